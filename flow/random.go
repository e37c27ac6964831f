package flow

// A RandomStream supplies independent uniform draws in [0,1).
type RandomStream interface {
	RandU01() float64
}
