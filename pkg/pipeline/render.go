package pipeline

import (
	"github.com/matzehuels/holepunch/pkg/errors"
	"github.com/matzehuels/holepunch/pkg/paper"
	"github.com/matzehuels/holepunch/pkg/render"
)

// RenderStep draws one history step of p in one format.
func RenderStep(p *paper.Paper, step int, format string, opts Options) ([]byte, error) {
	if format == FormatText {
		s, err := render.RenderText(p, step)
		return []byte(s), err
	}

	scene, err := render.Build(p, step, opts.RenderOptions())
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return render.RenderSVG(scene, render.WithTitle(scene.Caption)), nil
	case FormatPNG:
		return render.RenderPNG(scene, render.WithScale(opts.Scale))
	case FormatPDF:
		return render.ToPDF(render.RenderSVG(scene, render.WithTitle(scene.Caption)))
	case FormatJSON:
		return render.RenderJSON(scene, render.WithJSONFolds(p.Folds()))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}
