package catalogid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefix marks catalog item identifiers.
const Prefix = "med_"

// generator serializes access to the monotonic entropy source; ids are
// minted concurrently by upload submissions.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

var ids = &generator{
	entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
}

func (g *generator) next() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// New returns a med_* ULID string.
func New() string {
	return Prefix + strings.ToLower(ids.next().String())
}

// IsValid reports whether the string is a med_* ULID.
func IsValid(value string) bool {
	if !strings.HasPrefix(value, Prefix) {
		return false
	}
	_, err := Parse(value)
	return err == nil
}

// Parse strips the med_ prefix and returns the ULID.
func Parse(value string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, Prefix)
	value = strings.TrimPrefix(value, strings.ToUpper(Prefix))
	return ulid.Parse(value)
}
