package openings

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/patrickmn/go-cache"

	"github.com/hoyle1974/openings/storage"
	"github.com/hoyle1974/openings/telemetry"
)

// ErrFormat reports an openings log line that could not be parsed. A
// strict Loader wraps it with the key and line number.
var ErrFormat = errors.New("malformed openings line")

// Log lines look like:
//
//	01/02/24 10:00-11:00 h12 checked queen
//
// date, time range, hive token, then an optional comment that may itself
// contain spaces. Lines that are blank or start with '#' are skipped.
const lineLayout = "02/01/06 15:04"

var hiveToken = regexp.MustCompile(`h(\d+)`)

// DefaultLocation returns the zone opening times are recorded in.
// Wall-clock times in the log are taken as already being in this zone;
// they are localized, never converted.
func DefaultLocation() *time.Location {
	loc, err := time.LoadLocation("CET")
	if err != nil {
		return time.FixedZone("CET", 60*60)
	}
	return loc
}

// Loader parses openings logs out of a storage.System into Tables.
// Parsed tables are cached per key with a TTL so embedders can cheaply
// re-resolve the same log.
type Loader struct {
	store storage.System

	// Location is the fixed zone log timestamps are localized to.
	Location *time.Location
	// Strict makes the load fail on the first unparseable line. When
	// false (the default) bad lines are counted and skipped.
	Strict  bool
	Logger  telemetry.Logger
	Metrics telemetry.Metrics

	cache *cache.Cache
}

func NewLoader(store storage.System) *Loader {
	return &Loader{
		store:    store,
		Location: DefaultLocation(),
		Logger:   telemetry.NOPLogger{},
		Metrics:  telemetry.NOPMetrics{},
		cache:    cache.New(5*time.Minute, time.Hour),
	}
}

// LoadFile reads a single openings log from a disk path with default
// loader settings.
func LoadFile(path string) (*Table, error) {
	l := NewLoader(storage.NewDiskStorage(filepath.Dir(path)))
	return l.Load(context.Background(), filepath.Base(path))
}

// Load reads and parses the log stored under key.
func (l *Loader) Load(ctx context.Context, key string) (*Table, error) {
	if cached, ok := l.cache.Get(key); ok {
		return cached.(*Table), nil
	}

	data, err := l.store.Read(ctx, key)
	if err != nil {
		return nil, err
	}

	table, err := l.parse(key, data)
	if err != nil {
		return nil, err
	}
	l.cache.Set(key, table, cache.DefaultExpiration)

	l.Logger.Info(fmt.Sprintf("loaded %d openings from %s", table.Len(), key))
	l.Metrics.SetCount("openings.records", int64(table.Len()))

	return table, nil
}

// LoadPrefix parses every log stored under prefix (e.g. one file per
// season) and merges the records into a single Table.
func (l *Loader) LoadPrefix(ctx context.Context, prefix string) (*Table, error) {
	keys, err := l.store.Keys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	table := &Table{}
	for _, key := range keys {
		t, err := l.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		table = merge(table, t)
	}
	return table, nil
}

// ClearCache drops every cached table.
func (l *Loader) ClearCache() {
	l.cache.Flush()
}

func (l *Loader) parse(key string, data []byte) (*Table, error) {
	var records []Opening
	skipped := 0

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		recs, err := l.parseLine(line)
		if err != nil {
			if l.Strict {
				return nil, errors.Wrapf(err, "%s:%d", key, lineNum)
			}
			skipped++
			l.Logger.Debug(fmt.Sprintf("skipping %s:%d: %v", key, lineNum, err))
			continue
		}
		records = append(records, recs...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	l.Metrics.SetCount("openings.lines_skipped", int64(skipped))

	return &Table{records: records}, nil
}

// parseLine expands one log line into records, one per digit of the hive
// token. "h12" means hives 1 and 2, not hive twelve; hive numbers above 9
// cannot be expressed in the log format.
func (l *Loader) parseLine(line string) ([]Opening, error) {
	parts := strings.SplitN(line, " ", 4)
	if len(parts) < 3 {
		return nil, errors.Wrapf(ErrFormat, "expected 3 or 4 fields, got %d", len(parts))
	}
	date := strings.TrimSpace(parts[0])
	timeRange := strings.TrimSpace(parts[1])
	hives := strings.TrimSpace(parts[2])
	comment := ""
	if len(parts) == 4 {
		comment = strings.TrimSpace(parts[3])
	}

	startRaw, endRaw, ok := strings.Cut(timeRange, "-")
	if !ok {
		return nil, errors.Wrapf(ErrFormat, "bad time range %q", timeRange)
	}
	start, err := time.ParseInLocation(lineLayout, date+" "+startRaw, l.Location)
	if err != nil {
		return nil, errors.Wrapf(ErrFormat, "bad start time: %v", err)
	}
	end, err := time.ParseInLocation(lineLayout, date+" "+endRaw, l.Location)
	if err != nil {
		return nil, errors.Wrapf(ErrFormat, "bad end time: %v", err)
	}

	m := hiveToken.FindStringSubmatch(hives)
	if m == nil {
		return nil, errors.Wrapf(ErrFormat, "bad hive token %q", hives)
	}

	records := make([]Opening, 0, len(m[1]))
	for _, digit := range m[1] {
		records = append(records, Opening{
			Start:   start,
			End:     end,
			Hive:    int(digit - '0'),
			Comment: comment,
		})
	}
	return records, nil
}
