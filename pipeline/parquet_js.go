//go:build js

package pipeline

import "fmt"

var errParquetUnavailable = fmt.Errorf("parquet output is not available in js builds (use csv)")

func writeMetricSeriesParquet(string, []MetricSample) error {
	return errParquetUnavailable
}

func marshalMetricSeriesParquet([]MetricSample) ([]byte, error) {
	return nil, errParquetUnavailable
}
