// Package sweeper runs parameter sweeps of an external graph-partitioning
// program and collects its results.
//
// A sweep is the cartesian product of datasets, algorithms, server counts,
// replication factors and node limits. Each combination is run as a separate
// process with a bounded number running at once; its stdout lands in a
// result file named after the combination:
//
//	srv, _ := sweeper.New(sweeper.WithProgram("./social_network", "data"))
//	report, _ := srv.Run(ctx, "facebook")
//	rows, _ := srv.Aggregate(ctx)
//
// Sub-packages hold the individual pieces: model/trial and model/sweep for
// the data model, service/gate, service/supervisor and service/orchestrator
// for execution, service/sink and service/aggregate for results.
package sweeper
