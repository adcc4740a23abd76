package pdf

import (
	"fmt"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Info summarises the structure of a document as seen by pdfcpu
type Info struct {
	Pages     int    `json:"pages"`
	Version   string `json:"version,omitempty"`
	Encrypted bool   `json:"encrypted"`
}

// Inspector reads document structure with pdfcpu in relaxed validation mode
type Inspector struct{}

var disableConfigDir sync.Once

// NewInspector creates a new structure inspector. pdfcpu is kept away from
// the user config directory: it would write config.yml there and exit the
// process when the directory is unusable.
func NewInspector() *Inspector {
	disableConfigDir.Do(func() { model.ConfigPath = "disable" })
	return &Inspector{}
}

// Inspect reads the cross-reference table and page tree of the file at path
func (i *Inspector) Inspect(path string) (info *Info, err error) {
	// pdfcpu panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = fmt.Errorf("pdfcpu panic: %v", r)
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	info = &Info{
		Pages:     ctx.PageCount,
		Encrypted: ctx.Encrypt != nil,
	}
	if ctx.HeaderVersion != nil {
		info.Version = ctx.HeaderVersion.String()
	}

	return info, nil
}
