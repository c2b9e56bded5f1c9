package video

import (
	"strings"

	"github.com/ankitpatne/clipTag/internal/model"
)

type extraction struct {
	tags       model.Tags
	frames     model.ExplicitFrames
	transcript string
}

func extract(a *model.Annotation) extraction {
	ext := extraction{tags: model.Tags{}, frames: model.ExplicitFrames{}}
	if a == nil {
		return ext
	}

	ext.tags = append(ext.tags, a.Labels...)

	for _, f := range a.Frames {
		if !f.Likelihood.Qualifies() {
			continue
		}
		ext.frames = append(ext.frames, model.ExplicitFrame{
			TimeOffset: f.TimeOffset(),
			Likelihood: f.Likelihood,
		})
	}

	var b strings.Builder
	for _, seg := range a.Speeches {
		if len(seg.Alternatives) == 0 {
			continue
		}
		b.WriteString(seg.Alternatives[0])
		b.WriteString(" ")
	}
	ext.transcript = strings.TrimSpace(b.String())

	return ext
}
