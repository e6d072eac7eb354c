package dataset

import "time"

type Options struct {
	// Today supplies the date used for missing createdAt/updatedAt cells.
	Today func() time.Time
	// Recompute derives scores and levels from the imported factors instead
	// of trusting the score and level columns.
	Recompute bool
}

func DefaultOptions() Options {
	return Options{
		Today:     time.Now,
		Recompute: false,
	}
}

func (o Options) today() string {
	now := time.Now
	if o.Today != nil {
		now = o.Today
	}
	return now().Format(DateLayout)
}
