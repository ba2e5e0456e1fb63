package genome

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// BEDLoader loads regions from BED files (plain or gzipped).
//
// BED coordinates are zero-based half-open; they are converted to the
// inclusive bounds used by the index, so a BED row `chr1 100 200` becomes
// [100, 199].
type BEDLoader struct {
	path   string
	logger *zap.Logger
}

// NewBEDLoader creates a loader for the given file.
func NewBEDLoader(path string) *BEDLoader {
	return &BEDLoader{path: path, logger: zap.NewNop()}
}

// SetLogger sets the logger for skipped-line warnings.
func (l *BEDLoader) SetLogger(lg *zap.Logger) {
	l.logger = lg
}

// Load stages every region in the file into the set and returns the number
// of regions loaded. Malformed lines are skipped with a warning; header and
// comment lines are ignored. The caller still has to run set.Build.
func (l *BEDLoader) Load(s *Set) (int, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return 0, fmt.Errorf("open BED file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return 0, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return l.parse(reader, s)
}

func (l *BEDLoader) parse(r io.Reader, s *Set) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	loaded := 0
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			l.logger.Warn("skipping BED line with too few fields",
				zap.Int("line", lineNum), zap.Int("fields", len(fields)))
			continue
		}

		chrom := fields[0]
		start, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			l.logger.Warn("skipping BED line with bad start",
				zap.Int("line", lineNum), zap.String("start", fields[1]))
			continue
		}
		end, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			l.logger.Warn("skipping BED line with bad end",
				zap.Int("line", lineNum), zap.String("end", fields[2]))
			continue
		}
		if end <= start {
			l.logger.Warn("skipping empty BED region",
				zap.Int("line", lineNum), zap.Int64("start", start), zap.Int64("end", end))
			continue
		}

		name := fmt.Sprintf("%s:%d-%d", chrom, start, end)
		if len(fields) >= 4 && fields[3] != "" && fields[3] != "." {
			name = fields[3]
		}

		// Half-open to inclusive.
		if err := s.Add(chrom, start, end-1, name); err != nil {
			return loaded, fmt.Errorf("line %d: %w", lineNum, err)
		}
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return loaded, fmt.Errorf("read BED file: %w", err)
	}
	return loaded, nil
}
