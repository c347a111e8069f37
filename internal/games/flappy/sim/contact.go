package sim

// Contact is a pair of bodies touching this tick.
type Contact struct {
	A, B *Body
}

// Normalize orders the pair so the lower category value comes first.
func (c Contact) Normalize() Contact {
	if c.B.Category < c.A.Category {
		return Contact{A: c.B, B: c.A}
	}
	return c
}

// Verdict is the outcome of classifying a contact.
type Verdict int

const (
	VerdictIgnore Verdict = iota
	VerdictFatal
)

// Classify decides whether a contact between two categories ends the game.
// Only the player hitting an obstacle or the ground is fatal.
func Classify(a, b Category) Verdict {
	if b < a {
		a, b = b, a
	}
	if a == CategoryPlayer && (b == CategoryObstacle || b == CategoryGround) {
		return VerdictFatal
	}
	return VerdictIgnore
}

// DetectContacts returns all touching pairs where at least one side asked
// to be told about the other.
func DetectContacts(bodies []*Body) []Contact {
	var contacts []Contact
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		if !a.Solid() {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if !b.Solid() {
				continue
			}
			if !a.ContactWith.Has(b.Category) && !b.ContactWith.Has(a.Category) {
				continue
			}
			if a.Box.Touches(b.Box) {
				contacts = append(contacts, Contact{A: a, B: b}.Normalize())
			}
		}
	}
	return contacts
}

// Resolve reports the first fatal contact through onFatal, at most once per
// call, and only while the game is running. It returns whether onFatal ran.
func Resolve(contacts []Contact, status Status, onFatal func(Contact)) bool {
	if status != StatusRunning {
		return false
	}
	for _, c := range contacts {
		c = c.Normalize()
		if Classify(c.A.Category, c.B.Category) == VerdictFatal {
			onFatal(c)
			return true
		}
	}
	return false
}
