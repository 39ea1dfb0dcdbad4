package types

// Furniture is a single furniture catalog row. Dimensions are centimeters,
// price is in the smallest currency unit. Rows are immutable except for
// Stock, which only ever decreases through the reservation protocol.
type Furniture struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Price       int64  `json:"price"`
	Height      int64  `json:"height"`
	Width       int64  `json:"width"`
	Depth       int64  `json:"depth"`
	Color       string `json:"color"`
	Features    string `json:"features"`
	Kind        string `json:"kind"`
	Popularity  int64  `json:"popularity"`
	Stock       int64  `json:"stock"`
}

// Dimensions returns the three axis lengths in a fixed width, height, depth
// order. Orientation matching indexes into this slice.
func (f Furniture) Dimensions() [3]int64 {
	return [3]int64{f.Width, f.Height, f.Depth}
}
