package aggregate

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/tracing"
)

// ErrNoRecord is returned for an output file without a complete record.
var ErrNoRecord = errors.New("aggregate: no cost,time record")

// Service builds summary tables.
type Service struct {
	fs afs.Service
}

// New creates an aggregation service.
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}

// Collect summarises every result file under resultDir, sorted by file name.
// Files that cannot be parsed are skipped and logged.
func (s *Service) Collect(ctx context.Context, resultDir string) (rows []*Row, err error) {
	ctx, span := tracing.StartSpan(ctx, "aggregate.collect")
	defer func() { tracing.EndSpan(span.WithInt("rows", len(rows)), err) }()

	objects, err := s.fs.List(ctx, resultDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", resultDir, err)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Name() < objects[j].Name() })
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		row, err := s.parse(ctx, object)
		if err != nil {
			log.Printf("aggregate: skipping %s: %v", object.Name(), err)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Service) parse(ctx context.Context, object storage.Object) (*Row, error) {
	spec, err := trial.ParseName(object.Name())
	if err != nil {
		return nil, err
	}
	data, err := s.fs.Download(ctx, object)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	record, err := lastRecord(data)
	if err != nil {
		return nil, err
	}
	millis, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q: %w", record[1], err)
	}
	return &Row{
		Name:    object.Name(),
		Spec:    spec,
		Cost:    record[0],
		Seconds: millis / 1000.,
	}, nil
}

// lastRecord parses the last non-blank line of data. Earlier lines are
// program log output and never parsed.
func lastRecord(data []byte) ([]string, error) {
	data = bytes.TrimRight(data, " \t\r\n")
	if index := bytes.LastIndexByte(data, '\n'); index != -1 {
		data = data[index+1:]
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	record, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	if len(record) < 2 {
		return nil, ErrNoRecord
	}
	return record, nil
}

// Encode renders rows as CSV with the summary header.
func Encode(rows []*Row) ([]byte, error) {
	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)
	if err := writer.Write(Header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := writer.Write(row.Record()); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	return buffer.Bytes(), writer.Error()
}

// Write uploads rows as CSV to URL.
func (s *Service) Write(ctx context.Context, URL string, rows []*Row) error {
	data, err := Encode(rows)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload summary %s: %w", URL, err)
	}
	return nil
}
