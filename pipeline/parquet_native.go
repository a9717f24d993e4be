//go:build !js

package pipeline

import (
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

type metricSeriesParquetRow struct {
	FrameIndex  int64   `parquet:"name=frame_index, type=INT64"`
	FrameNumber int64   `parquet:"name=frame_number, type=INT64"`
	TimestampMs float64 `parquet:"name=timestamp_ms, type=DOUBLE"`
	Metric      string  `parquet:"name=metric, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Value       float64 `parquet:"name=value, type=DOUBLE"`
	Unit        string  `parquet:"name=unit, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

func writeMetricSeriesParquet(path string, samples []MetricSample) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	if err := writeMetricSeriesRows(fw, samples); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func marshalMetricSeriesParquet(samples []MetricSample) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	if err := writeMetricSeriesRows(fw, samples); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

func writeMetricSeriesRows(fw source.ParquetFile, samples []MetricSample) error {
	pw, err := writer.NewParquetWriter(fw, new(metricSeriesParquetRow), 4)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, s := range samples {
		row := metricSeriesParquetRow{
			FrameIndex:  int64(s.FrameIndex),
			FrameNumber: int64(s.FrameNumber),
			TimestampMs: s.TimestampMs,
			Metric:      s.Metric,
			Value:       s.Value,
			Unit:        s.Unit,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return err
		}
	}
	return pw.WriteStop()
}
