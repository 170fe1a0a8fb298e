package driver

import "time"

// Status captures the progress state of a single input.
type Status string

const (
	// StatusQueued indicates the file is waiting to be formatted.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being formatted.
	StatusWorking Status = "working"
	// StatusDone indicates the file was formatted (or was already clean).
	StatusDone Status = "done"
	// StatusError indicates the file could not be read or written.
	StatusError Status = "error"
)

// Event reports progress for one input file.
type Event struct {
	File    string
	Status  Status
	Changed bool
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent may be called from several
// goroutines when Jobs > 1.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent sends evt to the channel.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
