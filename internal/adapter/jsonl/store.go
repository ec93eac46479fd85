package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/YelzhanWeb/waste-tracker/internal/adapter/logger"
	"github.com/YelzhanWeb/waste-tracker/internal/domain"
	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

// maxLineBytes bounds a single log line; notes are free text. Longer lines
// are skipped like any other unreadable record.
const maxLineBytes = 1 << 20

// Store keeps entries in a newline-delimited JSON file. It assumes a single
// writer process.
type Store struct {
	path        string
	syncOnWrite bool
	logger      logger.Logger
}

func NewStore(path string, syncOnWrite bool, lgr logger.Logger) *Store {
	if lgr == nil {
		lgr = logger.Nop()
	}
	return &Store{
		path:        path,
		syncOnWrite: syncOnWrite,
		logger:      lgr,
	}
}

var _ interfaces.EntryRepository = (*Store)(nil)

func (s *Store) Path() string {
	return s.path
}

// Append writes the entry as one new line at the end of the log. A last
// line left without a newline is terminated first.
func (s *Store) Append(ctx context.Context, entry domain.WasteEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := domain.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	unterminated, err := missingTrailingNewline(file)
	if err != nil {
		return fmt.Errorf("failed to inspect log tail: %w", err)
	}
	if unterminated {
		data = append([]byte{'\n'}, data...)
	}

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}

	if s.syncOnWrite {
		if err := file.Sync(); err != nil {
			return fmt.Errorf("failed to sync log file: %w", err)
		}
	}

	return file.Close()
}

func missingTrailingNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}

// LoadAll reads every entry in file order. A missing file is an empty log.
// Lines that do not decode are skipped and reported in the result.
func (s *Store) LoadAll(ctx context.Context) (interfaces.LoadResult, error) {
	var result interfaces.LoadResult
	if err := ctx.Err(); err != nil {
		return result, err
	}

	file, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReaderSize(file, 64*1024)
	lineNum := 0
	for {
		raw, tooLong, readErr := readLine(reader, maxLineBytes)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return result, fmt.Errorf("error reading log at line %d: %w", lineNum+1, readErr)
		}
		if readErr != nil && len(raw) == 0 && !tooLong {
			break
		}
		lineNum++

		if tooLong {
			s.skip(&result, lineNum, fmt.Sprintf("line too long (over %d bytes)", maxLineBytes))
		} else if line := bytes.TrimSpace(raw); len(line) > 0 {
			entry, err := domain.Unmarshal(line)
			if err != nil {
				s.skip(&result, lineNum, err.Error())
			} else {
				result.Entries = append(result.Entries, entry)
			}
		}

		if readErr != nil {
			break
		}
	}

	return result, nil
}

func (s *Store) skip(result *interfaces.LoadResult, lineNum int, reason string) {
	result.Skipped = append(result.Skipped, interfaces.SkippedLine{Line: lineNum, Reason: reason})
	s.logger.Warn("line_skipped", "Skipping malformed log line", "", map[string]interface{}{
		"path":   s.path,
		"line":   lineNum,
		"reason": reason,
	})
}

// readLine returns the next line including its newline, if any. A line longer
// than max is consumed and dropped with tooLong set.
func readLine(r *bufio.Reader, max int) (line []byte, tooLong bool, err error) {
	for {
		chunk, readErr := r.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > max+1 {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(readErr, bufio.ErrBufferFull) {
			continue
		}
		return line, tooLong, readErr
	}
}

// DeleteByID rewrites the log without the entries carrying id. The file is
// left untouched when nothing matches.
func (s *Store) DeleteByID(ctx context.Context, id string) (interfaces.DeleteResult, error) {
	result, err := s.LoadAll(ctx)
	if err != nil {
		return interfaces.DeleteResult{}, err
	}

	kept := make([]domain.WasteEntry, 0, len(result.Entries))
	for _, e := range result.Entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	removed := len(result.Entries) - len(kept)
	if removed == 0 {
		return interfaces.DeleteResult{}, nil
	}

	if err := s.rewrite(kept); err != nil {
		return interfaces.DeleteResult{}, err
	}

	details := map[string]interface{}{
		"removed":         removed,
		"remaining":       len(kept),
		"dropped_corrupt": len(result.Skipped),
	}
	if len(result.Skipped) > 0 {
		s.logger.Warn("corrupt_lines_dropped", "Unreadable lines dropped while deleting entry", id, details)
	} else {
		s.logger.Info("entry_deleted", "Entry removed from log", id, details)
	}
	return interfaces.DeleteResult{Removed: removed, DroppedCorrupt: len(result.Skipped)}, nil
}

// Compact rewrites the log keeping only lines that decode.
func (s *Store) Compact(ctx context.Context) (interfaces.LoadResult, error) {
	result, err := s.LoadAll(ctx)
	if err != nil {
		return result, err
	}
	if len(result.Skipped) == 0 {
		return result, nil
	}

	if err := s.rewrite(result.Entries); err != nil {
		return result, err
	}

	s.logger.Info("log_compacted", "Malformed lines removed from log", "", map[string]interface{}{
		"kept":    len(result.Entries),
		"dropped": len(result.Skipped),
	})
	return result, nil
}

func (s *Store) rewrite(entries []domain.WasteEntry) error {
	var buf bytes.Buffer
	for _, e := range entries {
		data, err := domain.Marshal(e)
		if err != nil {
			return err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}

	if err := writeFileAtomic(s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to rewrite log file: %w", err)
	}
	return nil
}
