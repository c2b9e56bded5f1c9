package model

// Annotation is the provider-neutral result of a video annotation job.
type Annotation struct {
	Labels   []string
	Frames   []FrameAnnotation
	Speeches []SpeechSegment
}

// FrameAnnotation is one explicit-content frame as reported by the provider.
type FrameAnnotation struct {
	Seconds    int64
	Micros     int64
	Likelihood Likelihood
}

// TimeOffset returns the frame position in seconds.
func (f FrameAnnotation) TimeOffset() float64 {
	return float64(f.Seconds) + float64(f.Micros)/1e6
}

// SpeechSegment holds the transcription alternatives of one segment, best first.
type SpeechSegment struct {
	Alternatives []string
}
