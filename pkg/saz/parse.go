package saz

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"
)

// Parser turns capture archives into ordered session lists.
// A Parser holds no per-archive state and is safe for concurrent use.
type Parser struct {
	workers int
	logger  *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithWorkers sets how many sessions are extracted concurrently.
// Values below 2 keep extraction sequential. Output order never changes.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		p.workers = n
	}
}

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser creates a Parser with the given options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{workers: 1, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads the capture archive at path with a default Parser.
func Parse(path string) ([]Session, error) {
	return NewParser().ParseFile(path)
}

// ParseFile opens path, parses it and closes it again regardless of outcome.
func (p *Parser) ParseFile(path string) ([]Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: ErrRead, Op: "open", Archive: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &Error{Kind: ErrRead, Op: "stat", Archive: path, Err: err}
	}

	p.logger.Debug("parsing capture", slog.String("path", path), slog.Int64("size", info.Size()))

	sessions, err := p.ParseReader(f, info.Size())
	if err != nil {
		return nil, withArchive(err, path)
	}
	return sessions, nil
}

// ParseReader parses a capture archive of the given size.
//
// The steps run strictly in order and the first failure aborts the parse:
// sniff the signature, enumerate the entries, infer the session range, then
// build sessions 1..N from their request/response pairs. A missing pair
// entry, request line or status line is fatal for the whole archive.
func (p *Parser) ParseReader(r io.ReaderAt, size int64) ([]Session, error) {
	format, err := sniff(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, newError(ErrRead, "sniff", "", err)
	}
	if kind := format.Err(); kind != nil {
		return nil, newError(kind, "sniff", "", nil)
	}

	entries, err := enumerate(r, size, p.logger)
	if err != nil {
		return nil, err
	}

	total, width := InferSessionRange(entries)

	sessions, err := p.assemble(entries, total, width)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("parsed capture",
		slog.Int("entries", len(entries)),
		slog.Int("sessions", len(sessions)),
		slog.Int("padding", width),
	)

	return sessions, nil
}

// pair is a resolved request/response entry pair for one sequence number.
type pair struct {
	req, resp *Entry
}

func (p *Parser) assemble(entries []Entry, total uint32, width int) ([]Session, error) {
	byPath := entryIndex(entries)

	// total comes from an entry name, so it is not trusted for sizing: pairs
	// grows only as entries resolve, and a gap fails before anything large
	// is allocated.
	var pairs []pair
	for n := uint32(1); n <= total; n++ {
		reqPath := RequestPath(n, width)
		ri, ok := byPath[reqPath]
		if !ok {
			return nil, newError(ErrInvalid, "assemble", reqPath, missingEntry(reqPath))
		}
		respPath := ResponsePath(n, width)
		si, ok := byPath[respPath]
		if !ok {
			return nil, newError(ErrInvalid, "assemble", respPath, missingEntry(respPath))
		}
		pairs = append(pairs, pair{req: &entries[ri], resp: &entries[si]})
	}

	sessions := make([]Session, len(pairs))

	if p.workers < 2 {
		for i, pr := range pairs {
			s, err := NewSession(uint32(i+1), *pr.req, *pr.resp)
			if err != nil {
				return nil, err
			}
			sessions[i] = s
		}
		return sessions, nil
	}

	// Each goroutine reads only its own pair and writes only its own slot.
	errs := make([]error, len(pairs))
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, pr := range pairs {
		g.Go(func() error {
			s, err := NewSession(uint32(i+1), *pr.req, *pr.resp)
			if err != nil {
				errs[i] = err
				return err
			}
			sessions[i] = s
			return nil
		})
	}
	if g.Wait() != nil {
		// Report the lowest failing index so the error doesn't depend on scheduling.
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	return sessions, nil
}
