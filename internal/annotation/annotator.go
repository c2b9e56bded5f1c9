package annotation

import (
	"context"
	"errors"
	"fmt"

	videointelligence "cloud.google.com/go/videointelligence/apiv1"
	"cloud.google.com/go/videointelligence/apiv1/videointelligencepb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/port"
)

var features = []videointelligencepb.Feature{
	videointelligencepb.Feature_LABEL_DETECTION,
	videointelligencepb.Feature_EXPLICIT_CONTENT_DETECTION,
	videointelligencepb.Feature_SPEECH_TRANSCRIPTION,
}

// annotateFunc starts an annotation job and waits for its result.
type annotateFunc func(ctx context.Context, req *videointelligencepb.AnnotateVideoRequest) (*videointelligencepb.AnnotateVideoResponse, error)

type Annotator struct {
	annotate     annotateFunc
	languageCode string
	closer       func() error
}

// compile-time check: *Annotator must satisfy port.Annotator
var _ port.Annotator = (*Annotator)(nil)

// NewAnnotator dials the Video Intelligence API. An empty credentialsFile
// falls back to application default credentials.
func NewAnnotator(ctx context.Context, credentialsFile, languageCode string) (*Annotator, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := videointelligence.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("video intelligence client: %w", err)
	}

	annotate := func(ctx context.Context, req *videointelligencepb.AnnotateVideoRequest) (*videointelligencepb.AnnotateVideoResponse, error) {
		op, err := client.AnnotateVideo(ctx, req)
		if err != nil {
			return nil, err
		}
		return op.Wait(ctx)
	}

	a := newAnnotator(annotate, languageCode)
	a.closer = client.Close
	return a, nil
}

func newAnnotator(annotate annotateFunc, languageCode string) *Annotator {
	return &Annotator{annotate: annotate, languageCode: languageCode}
}

func (a *Annotator) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

// Annotate runs label, explicit content and speech detection on content.
func (a *Annotator) Annotate(ctx context.Context, content []byte) (*model.Annotation, error) {
	req := &videointelligencepb.AnnotateVideoRequest{
		InputContent: content,
		Features:     features,
		VideoContext: &videointelligencepb.VideoContext{
			SpeechTranscriptionConfig: &videointelligencepb.SpeechTranscriptionConfig{
				LanguageCode:               a.languageCode,
				EnableAutomaticPunctuation: true,
			},
		},
	}

	logger.Debugf(ctx, "submitting %d bytes for annotation", len(content))
	resp, err := a.annotate(ctx, req)
	if err != nil {
		if status.Code(err) == codes.DeadlineExceeded {
			return nil, fmt.Errorf("annotate video: %w", context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("annotate video: %w", err)
	}

	results := resp.GetAnnotationResults()
	if len(results) == 0 {
		return nil, errors.New("annotate video: empty response")
	}
	if e := results[0].GetError(); e != nil && e.GetCode() != int32(codes.OK) {
		return nil, fmt.Errorf("annotate video: provider error %d: %s", e.GetCode(), e.GetMessage())
	}

	return toAnnotation(results[0]), nil
}

func toAnnotation(r *videointelligencepb.VideoAnnotationResults) *model.Annotation {
	ann := &model.Annotation{}

	// every segment label becomes a tag, in provider order
	for _, label := range r.GetSegmentLabelAnnotations() {
		ann.Labels = append(ann.Labels, label.GetEntity().GetDescription())
	}

	for _, frame := range r.GetExplicitAnnotation().GetFrames() {
		offset := frame.GetTimeOffset()
		ann.Frames = append(ann.Frames, model.FrameAnnotation{
			Seconds:    offset.GetSeconds(),
			Micros:     int64(offset.GetNanos()) / 1000,
			Likelihood: model.Likelihood(frame.GetPornographyLikelihood().String()),
		})
	}

	for _, tr := range r.GetSpeechTranscriptions() {
		var seg model.SpeechSegment
		for _, alt := range tr.GetAlternatives() {
			seg.Alternatives = append(seg.Alternatives, alt.GetTranscript())
		}
		ann.Speeches = append(ann.Speeches, seg)
	}

	return ann
}
