package processor

import (
	"github.com/charmbracelet/log"

	"github.com/miorlan/asset-bundler/internal/domain"
)

// Names of the bundled processors.
const (
	NameBOMStripper       = "bomStripper"
	NameCSSURLRewriting   = "cssUrlRewriting"
	NameCSSImport         = "cssImport"
	NameSemicolonAppender = "semicolonAppender"
	NameCommentStripper   = "singlelineCommentStripper"
	NameCSSMin            = "cssMin"
	NameJSMin             = "jsMin"
	NameCSSVariables      = "cssVariables"
)

var (
	// DefaultPreProcessors is the pre-processor chain used when none is configured.
	DefaultPreProcessors = []string{
		NameBOMStripper,
		NameCSSURLRewriting,
		NameCSSImport,
		NameSemicolonAppender,
		NameJSMin,
		NameCSSMin,
	}
	// DefaultPostProcessors is the post-processor chain used when none is configured.
	DefaultPostProcessors = []string{
		NameCSSVariables,
	}
)

var (
	cssOnly = Capabilities{Types: []domain.ResourceType{domain.TypeCSS}}
	jsOnly  = Capabilities{Types: []domain.ResourceType{domain.TypeJS}}
	cssMin  = Capabilities{Types: []domain.ResourceType{domain.TypeCSS}, Minifier: true}
	jsMin   = Capabilities{Types: []domain.ResourceType{domain.TypeJS}, Minifier: true}
)

// transforms are the resource agnostic processors usable in both chains.
func transforms() map[string]PostDescriptor {
	return map[string]PostDescriptor{
		NameBOMStripper:       {Name: NameBOMStripper, Processor: StripBOM()},
		NameSemicolonAppender: {Name: NameSemicolonAppender, Processor: AppendSemicolon(), Capabilities: jsOnly},
		NameCommentStripper:   {Name: NameCommentStripper, Processor: StripSingleLineComments()},
		NameCSSMin:            {Name: NameCSSMin, Processor: NewCSSMinifier(), Capabilities: cssMin},
		NameJSMin:             {Name: NameJSMin, Processor: NewJSMinifier(), Capabilities: jsMin},
		NameCSSVariables:      {Name: NameCSSVariables, Processor: ResolveCSSVariables(), Capabilities: cssOnly},
	}
}

// NewPipeline builds an executor with the named processors, in order.
func NewPipeline(l domain.Locator, pre, post []string, logger *log.Logger) (*Executor, error) {
	if logger == nil {
		logger = log.Default()
	}
	e := NewExecutor(l, WithExecutorLogger(logger))
	known := transforms()

	for _, name := range pre {
		switch name {
		case NameCSSURLRewriting:
			e.AddPre(PreDescriptor{Name: name, Processor: NewURLRewriter(), Capabilities: cssOnly})
		case NameCSSImport:
			resolver := NewImportResolver(l, e.PreProcessors(), WithImportLogger(logger))
			e.AddPre(PreDescriptor{Name: name, Processor: resolver, Capabilities: cssOnly})
		default:
			d, ok := known[name]
			if !ok {
				return nil, &domain.ErrUnknownProcessor{Name: name}
			}
			e.AddPre(PreDescriptor{Name: name, Processor: PerResource(d.Processor), Capabilities: d.Capabilities})
		}
	}

	for _, name := range post {
		d, ok := known[name]
		if !ok {
			return nil, &domain.ErrUnknownProcessor{Name: name}
		}
		e.AddPost(d)
	}
	return e, nil
}
