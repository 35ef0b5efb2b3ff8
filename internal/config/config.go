// Package config loads export settings from a YAML or CUE file, layers
// command-line overrides on top and turns the result into request options.
//
// File keys are camelCase (connectionUrl, sqlFile, queryParallelism, ...).
// Unknown keys are rejected so that typos fail loudly.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/roach88/dbexport/internal/request"
)

// File holds every setting an export accepts. Unset fields are nil.
type File struct {
	ConnectionURL      *string `yaml:"connectionUrl" json:"connectionUrl,omitempty"`
	Table              *string `yaml:"table" json:"table,omitempty"`
	SQLFile            *string `yaml:"sqlFile" json:"sqlFile,omitempty"`
	Limit              *int64  `yaml:"limit" json:"limit,omitempty"`
	Partition          *string `yaml:"partition" json:"partition,omitempty"`
	PartitionColumn    *string `yaml:"partitionColumn" json:"partitionColumn,omitempty"`
	PartitionPeriod    *string `yaml:"partitionPeriod" json:"partitionPeriod,omitempty"`
	SplitColumn        *string `yaml:"splitColumn" json:"splitColumn,omitempty"`
	QueryParallelism   *int    `yaml:"queryParallelism" json:"queryParallelism,omitempty"`
	SkipPartitionCheck *bool   `yaml:"skipPartitionCheck" json:"skipPartitionCheck,omitempty"`
	MinPartitionPeriod *string `yaml:"minPartitionPeriod" json:"minPartitionPeriod,omitempty"`
}

// Merge returns f with every field set in overrides replaced.
func (f File) Merge(overrides File) File {
	out := f
	pick(&out.ConnectionURL, overrides.ConnectionURL)
	pick(&out.Table, overrides.Table)
	pick(&out.SQLFile, overrides.SQLFile)
	pick(&out.Limit, overrides.Limit)
	pick(&out.Partition, overrides.Partition)
	pick(&out.PartitionColumn, overrides.PartitionColumn)
	pick(&out.PartitionPeriod, overrides.PartitionPeriod)
	pick(&out.SplitColumn, overrides.SplitColumn)
	pick(&out.QueryParallelism, overrides.QueryParallelism)
	pick(&out.SkipPartitionCheck, overrides.SkipPartitionCheck)
	pick(&out.MinPartitionPeriod, overrides.MinPartitionPeriod)
	return out
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// Options converts f into request options. When SQLFile is set the file is
// read and its trimmed text becomes the raw SQL source.
func (f File) Options() (request.Options, error) {
	opts := request.Options{
		Table:              f.Table,
		Limit:              f.Limit,
		Partition:          f.Partition,
		PartitionColumn:    f.PartitionColumn,
		PartitionPeriod:    f.PartitionPeriod,
		SplitColumn:        f.SplitColumn,
		QueryParallelism:   f.QueryParallelism,
		MinPartitionPeriod: f.MinPartitionPeriod,
	}
	if f.SkipPartitionCheck != nil {
		opts.SkipPartitionCheck = *f.SkipPartitionCheck
	}
	if f.SQLFile != nil {
		text, err := ReadSQLFile(*f.SQLFile)
		if err != nil {
			return request.Options{}, err
		}
		opts.SQL = &text
	}
	return opts, nil
}

// ReadSQLFile reads a query file as UTF-8 and trims surrounding whitespace.
// The query itself is returned byte for byte.
func ReadSQLFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &request.ConfigError{Field: request.FieldSQLFile, Message: err.Error()}
	}
	if !utf8.Valid(data) {
		return "", &request.ConfigError{Field: request.FieldSQLFile, Message: path + " is not valid UTF-8"}
	}
	return strings.TrimSpace(string(data)), nil
}

// resolveRelative makes a relative sqlFile path relative to the directory
// of the config file that named it.
func (f *File) resolveRelative(configPath string) {
	if f.SQLFile == nil || filepath.IsAbs(*f.SQLFile) || *f.SQLFile == "" {
		return
	}
	p := filepath.Join(filepath.Dir(configPath), *f.SQLFile)
	f.SQLFile = &p
}
