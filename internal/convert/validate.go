package convert

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// preflight runs pdfcpu's relaxed validation so that structurally broken
// files fail before text extraction starts.
func preflight(path string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("%w: pdfcpu validate: %v", ErrExtract, err)
	}
	return nil
}
