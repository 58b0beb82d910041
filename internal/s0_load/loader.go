package s0_load

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/pkg/logger"
)

// LoadError is a missing, unreadable or malformed input file (fatal)
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrEmptyFile the file has no header row
var ErrEmptyFile = errors.New("empty file")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader reads the sentiment and trade inputs
// ⭐ SSOT: 입력 파일 읽기는 여기서만
type Loader struct {
	sentimentPath string
	tradesPath    string
	logger        *logger.Logger
}

// LoadResult holds the raw tables and what was resolved from them
type LoadResult struct {
	SentimentTable *contracts.Table
	TradeTable     *contracts.Table
	TradeSchema    *contracts.TradeSchema
	Sentiment      *contracts.SentimentIndex
}

// NewLoader creates a new loader
func NewLoader(sentimentPath, tradesPath string, log *logger.Logger) *Loader {
	return &Loader{
		sentimentPath: sentimentPath,
		tradesPath:    tradesPath,
		logger:        log,
	}
}

// Load reads both inputs, resolves the trade schema and parses the sentiment index
func (l *Loader) Load(ctx context.Context) (*LoadResult, error) {
	sentimentTable, err := ReadTable(l.sentimentPath)
	if err != nil {
		return nil, err
	}
	l.logger.WithFields(map[string]interface{}{
		"file":    l.sentimentPath,
		"rows":    sentimentTable.NumRows(),
		"columns": sentimentTable.NumCols(),
	}).Info("Loaded sentiment index")

	tradeTable, err := ReadTable(l.tradesPath)
	if err != nil {
		return nil, err
	}
	l.logger.WithFields(map[string]interface{}{
		"file":    l.tradesPath,
		"rows":    tradeTable.NumRows(),
		"columns": tradeTable.NumCols(),
	}).Info("Loaded trades")

	schema, err := ResolveTradeSchema(tradeTable.Header)
	if err != nil {
		return nil, fmt.Errorf("trades %s: %w", l.tradesPath, err)
	}
	l.warnSchema(schema)

	index, err := ParseSentimentIndex(sentimentTable)
	if err != nil {
		return nil, fmt.Errorf("sentiment %s: %w", l.sentimentPath, err)
	}
	if index.Dropped > 0 {
		l.logger.WithField("dropped", index.Dropped).Warn("Dropped unparseable sentiment rows")
	}
	if index.Duplicates > 0 {
		l.logger.WithField("duplicates", index.Duplicates).Warn("Duplicate sentiment dates, kept first")
	}

	return &LoadResult{
		SentimentTable: sentimentTable,
		TradeTable:     tradeTable,
		TradeSchema:    schema,
		Sentiment:      index,
	}, nil
}

func (l *Loader) warnSchema(schema *contracts.TradeSchema) {
	if schema.TimestampFallback {
		l.logger.WithField("column", schema.TimestampColumn).
			Warnf("%q column not found, using last column as timestamp", contracts.ColumnTimestamp)
	}
	if schema.PnLRemapped {
		l.logger.WithField("column", schema.PnLColumn).
			Warnf("%q column not found, using first pnl-like column", contracts.ColumnPnL)
	}
}

// ReadTable reads a comma-separated file with a header row.
// A UTF-8 BOM on the first header cell is stripped and header cells are trimmed.
func ReadTable(path string) (*contracts.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	hasher := sha256.New()
	buffered := bufio.NewReader(io.TeeReader(file, hasher))
	if prefix, _ := buffered.Peek(len(utf8BOM)); bytes.Equal(prefix, utf8BOM) {
		_, _ = buffered.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Path: path, Err: ErrEmptyFile}
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("read row %d: %w", len(rows)+1, err)}
		}
		rows = append(rows, record)
	}

	return &contracts.Table{
		Source: path,
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
		Header: header,
		Rows:   rows,
	}, nil
}
