package components

// Vitals tracks an animal's energy budget and age in turns.
type Vitals struct {
	Energy int
	Age    int
}

// Organism bundles identity and variant.
type Organism struct {
	ID   string
	Kind Kind
}
