package writer

import (
	"bytes"
	"fmt"

	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// ArchiveRecord is the long-format parquet schema for archived day rows:
// one record per (time, column) cell, which keeps a single schema across
// all domains despite their differing column sets.
type ArchiveRecord struct {
	Day    string `parquet:"name=day, type=BYTE_ARRAY, convertedtype=UTF8"`
	Domain string `parquet:"name=domain, type=BYTE_ARRAY, convertedtype=UTF8"`
	Time   string `parquet:"name=time, type=BYTE_ARRAY, convertedtype=UTF8"`
	Field  string `parquet:"name=field, type=BYTE_ARRAY, convertedtype=UTF8"`
	Value  string `parquet:"name=value, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// memoryFileWriter implements the ParquetFile interface for in-memory writing
type memoryFileWriter struct {
	buffer *bytes.Buffer
}

func newMemoryFileWriter() *memoryFileWriter {
	return &memoryFileWriter{buffer: &bytes.Buffer{}}
}

func (mfw *memoryFileWriter) Create(name string) (source.ParquetFile, error) {
	return mfw, nil
}

func (mfw *memoryFileWriter) Open(name string) (source.ParquetFile, error) {
	return mfw, nil
}

func (mfw *memoryFileWriter) Seek(offset int64, whence int) (int64, error) {
	return int64(mfw.buffer.Len()), nil
}

func (mfw *memoryFileWriter) Read(b []byte) (int, error) {
	return mfw.buffer.Read(b)
}

func (mfw *memoryFileWriter) Write(b []byte) (int, error) {
	return mfw.buffer.Write(b)
}

func (mfw *memoryFileWriter) Close() error {
	return nil
}

func (mfw *memoryFileWriter) Bytes() []byte {
	return mfw.buffer.Bytes()
}

// buildArchiveRecords flattens an assembled day table into long-format
// archive records. The first header column is the time key.
func buildArchiveRecords(day, domain string, header []string, rows [][]string) []ArchiveRecord {
	records := make([]ArchiveRecord, 0, len(rows)*(len(header)-1))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		for i := 1; i < len(header) && i < len(row); i++ {
			records = append(records, ArchiveRecord{
				Day:    day,
				Domain: domain,
				Time:   row[0],
				Field:  header[i],
				Value:  row[i],
			})
		}
	}
	return records
}

// encodeParquet renders archive records into an in-memory parquet file.
func encodeParquet(records []ArchiveRecord) ([]byte, error) {
	fw := newMemoryFileWriter()

	pw, err := writer.NewParquetWriter(fw, new(ArchiveRecord), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, record := range records {
		if err := pw.Write(record); err != nil {
			pw.WriteStop()
			return nil, fmt.Errorf("failed to write parquet record: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("failed to finalize parquet writing: %w", err)
	}

	return fw.Bytes(), nil
}
