package resolver

// Tier names the stage of resolution that produced a message.
type Tier string

const (
	TierCustom   Tier = "custom"
	TierDefault  Tier = "default"
	TierFallback Tier = "fallback"
)

// Observer is notified about every resolution. Implementations must be safe
// for concurrent use when the resolver is shared.
type Observer interface {
	// Resolved is called once per successful Resolve with the tier that
	// produced the text.
	Resolved(tier Tier, code string)
	// Deferred is called when a matching custom rule returned blank text.
	Deferred(key Key)
}

type nopObserver struct{}

func (nopObserver) Resolved(Tier, string) {}
func (nopObserver) Deferred(Key)          {}
