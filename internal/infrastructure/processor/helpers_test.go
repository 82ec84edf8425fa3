package processor

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/miorlan/asset-bundler/internal/domain"
)

// memLocator serves resources from memory
type memLocator struct {
	mu     sync.Mutex
	files  map[string]string
	delays map[string]time.Duration
	calls  map[string]int
}

func newMemLocator(files map[string]string) *memLocator {
	return &memLocator{
		files:  files,
		delays: make(map[string]time.Duration),
		calls:  make(map[string]int),
	}
}

func (m *memLocator) Locate(ctx context.Context, uri string) (io.ReadCloser, error) {
	m.mu.Lock()
	delay := m.delays[uri]
	m.calls[uri]++
	content, ok := m.files[uri]
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if !ok {
		return nil, &domain.ErrResourceNotFound{URI: uri}
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func cssRes(uri string) domain.Resource {
	return domain.NewResource(uri, domain.TypeCSS)
}

func jsRes(uri string) domain.Resource {
	return domain.NewResource(uri, domain.TypeJS)
}

func newTestLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: log.DebugLevel})
}

// importPipeline builds an executor whose only pre-processor is the import
// resolver.
func importPipeline(l domain.Locator, logger *log.Logger) *Executor {
	e := NewExecutor(l, WithExecutorLogger(logger))
	e.AddPre(PreDescriptor{
		Name:         NameCSSImport,
		Processor:    NewImportResolver(l, e.PreProcessors(), WithImportLogger(logger)),
		Capabilities: cssOnly,
	})
	return e
}

// upper is a pre-processor upper-casing its input
var upper = PreFunc(func(ctx context.Context, res domain.Resource, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.ToUpper(string(data)))
	return err
})

// suffix returns a post-processor appending s
func suffix(s string) PostFunc {
	return func(ctx context.Context, r io.Reader, w io.Writer) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, string(data)+s)
		return err
	}
}
