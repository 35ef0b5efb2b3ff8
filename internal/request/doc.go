// Package request turns a raw, partially specified set of export options into
// a validated, immutable Request.
//
// Validation is an ordered pipeline of guards. Each guard inspects the
// options and the request built so far and either extends the request or
// stops the pipeline with an error. Nothing in this package performs I/O;
// the SQL text of a --sql-file has already been read by the caller, and the
// wall clock used for the partition freshness check is injected.
//
// The order of the guards is part of the contract:
//
//  1. query source: exactly one of table or raw SQL; table name pattern
//  2. literals: partition, partition period
//  3. partitionColumn requires partition
//  4. splitColumn and queryParallelism come together
//  5. queryParallelism and limit are positive
//  6. partition freshness, unless skipped or a partition column is set;
//     minPartitionPeriod is only parsed when this check runs
//
// Configuration failures are *ConfigError; unparsable literals surface as
// *temporal.ParseError.
package request
