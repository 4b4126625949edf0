package carousel

// Renderer turns one item into whatever the presentation layer draws for a
// slide.
type Renderer[T, R any] func(item T) R

// RenderSlides applies render to each item in order.
func RenderSlides[T, R any](items []T, render Renderer[T, R]) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, render(item))
	}
	return out
}
