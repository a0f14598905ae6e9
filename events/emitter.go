package events

import (
	"io"

	"github.com/rs/zerolog"
)

// Emitter writes events to a structured log and, when a sink is configured,
// appends them for indexer replay. A nil *Emitter drops everything, so
// engines can run without observability wired up.
type Emitter struct {
	log  zerolog.Logger
	sink Sink
}

// NewEmitter creates an Emitter logging to w. sink may be nil.
func NewEmitter(w io.Writer, sink Sink) *Emitter {
	if w == nil {
		w = io.Discard
	}
	return &Emitter{
		log:  zerolog.New(w).With().Timestamp().Logger(),
		sink: sink,
	}
}

// Emit persists and logs ev. The assigned sequence number is written back
// into ev.Seq.
func (e *Emitter) Emit(ev *Event) error {
	if e == nil {
		return nil
	}
	if e.sink != nil {
		seq, err := e.sink.AppendEvent(ev)
		if err != nil {
			return err
		}
		ev.Seq = seq
	}

	entry := e.log.Info().
		Str("kind", string(ev.Kind)).
		Uint64("seq", ev.Seq)
	if ev.EditionID != 0 {
		entry = entry.Uint64("edition_id", ev.EditionID)
	}
	if ev.PhaseID != 0 {
		entry = entry.Uint64("phase_id", ev.PhaseID)
	}
	if ev.Quantity != 0 {
		entry = entry.Uint64("quantity", ev.Quantity)
	}
	if ev.Actor != "" {
		entry = entry.Str("actor", ev.Actor)
	}
	if ev.Recipient != "" {
		entry = entry.Str("recipient", ev.Recipient)
	}
	if ev.Handler != "" {
		entry = entry.Str("handler", ev.Handler)
	}
	if ev.Key != "" {
		entry = entry.Str("key", ev.Key)
	}
	if ev.Salt != "" {
		entry = entry.Str("salt", ev.Salt)
	}
	if ev.Amount != "" {
		entry = entry.Str("amount", ev.Amount)
	}
	entry.Msg("event")
	return nil
}
