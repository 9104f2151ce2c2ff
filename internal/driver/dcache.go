package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"kangaroo/internal/diag"
	"kangaroo/internal/parser"
	"kangaroo/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// CacheKey is sha256(content || options fingerprint).
type CacheKey [32]byte

// DiskCache хранит результаты построчного разбора файлов на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of ParseLines for one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	Path   string
	Units  []UnitPayload
}

// UnitPayload stores one line. Spans are kept as offsets, the file ID is
// reassigned on restore.
type UnitPayload struct {
	Line       int
	Start, End uint32
	Blank      bool
	Rendering  string

	HasErr   bool
	ErrCode  uint16
	ErrMsg   string
	ErrStart uint32
	ErrEnd   uint32

	Diags []DiagPayload
}

type DiagPayload struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []NotePayload
}

type NotePayload struct {
	Start uint32
	End   uint32
	Msg   string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Key derives the cache key for a file hash parsed with opts.
func (c *DiskCache) Key(content [32]byte, opts Options) CacheKey {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte(opts.fingerprint()))
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог "units", чтобы было проще чистить
	return filepath.Join(c.dir, "units", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key CacheKey, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// A payload written with another schema is reported as a miss.
func (c *DiskCache) Get(key CacheKey, out *DiskPayload) (found bool, err error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// unitsToPayload converts parsed units to their cached form.
func unitsToPayload(path string, units []UnitResult) *DiskPayload {
	payload := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   path,
		Units:  make([]UnitPayload, len(units)),
	}
	for i := range units {
		u := &units[i]
		up := UnitPayload{
			Line:      u.Line,
			Start:     u.Span.Start,
			End:       u.Span.End,
			Blank:     u.Blank,
			Rendering: u.Rendering,
		}
		var perr *parser.Error
		if errors.As(u.Err, &perr) {
			up.HasErr = true
			up.ErrCode = uint16(perr.Code)
			up.ErrMsg = perr.Message
			up.ErrStart, up.ErrEnd = perr.Span.Start, perr.Span.End
		}
		for _, d := range u.Bag.Items() {
			dp := DiagPayload{
				Severity: uint8(d.Severity),
				Code:     uint16(d.Code),
				Message:  d.Message,
				Start:    d.Primary.Start,
				End:      d.Primary.End,
			}
			for _, n := range d.Notes {
				dp.Notes = append(dp.Notes, NotePayload{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
			}
			up.Diags = append(up.Diags, dp)
		}
		payload.Units[i] = up
	}
	return payload
}

// payloadToUnits restores units against file. Units have no Builder.
func payloadToUnits(payload *DiskPayload, file *source.File, maxDiagnostics int) []UnitResult {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file.ID, Start: start, End: end}
	}
	units := make([]UnitResult, len(payload.Units))
	for i, up := range payload.Units {
		u := UnitResult{
			Line:      up.Line,
			Span:      span(up.Start, up.End),
			Blank:     up.Blank,
			Rendering: up.Rendering,
		}
		if !up.Blank {
			u.Bag = diag.NewBag(maxDiagnostics)
		}
		if up.HasErr {
			u.Err = &parser.Error{
				Code:    diag.Code(up.ErrCode),
				Span:    span(up.ErrStart, up.ErrEnd),
				Message: up.ErrMsg,
			}
		}
		for _, dp := range up.Diags {
			d := diag.New(diag.Severity(dp.Severity), diag.Code(dp.Code), span(dp.Start, dp.End), dp.Message)
			for _, n := range dp.Notes {
				d = d.WithNote(span(n.Start, n.End), n.Msg)
			}
			u.Bag.Add(d)
		}
		units[i] = u
	}
	return units
}
