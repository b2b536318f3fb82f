package icongen

import "fmt"

// Slot is one entry of an Xcode app icon set that a file fills.
type Slot struct {
	Idiom string
	// Points is the slot size in points, e.g. "20x20" or "83.5x83.5".
	Points string
	Scale  string
}

// Icon is a square output file of the size table.
type Icon struct {
	Name  string
	Size  int
	Slots []Slot
}

// SizeTable is an ordered list of icons; order is generation order.
type SizeTable []Icon

// IOSAppIcons is the iOS / iPadOS app icon set.
var IOSAppIcons = SizeTable{
	{Name: "Icon-20.png", Size: 20, Slots: []Slot{{"ipad", "20x20", "1x"}}},
	{Name: "Icon-29.png", Size: 29, Slots: []Slot{{"ipad", "29x29", "1x"}}},
	{Name: "Icon-40.png", Size: 40, Slots: []Slot{{"iphone", "20x20", "2x"}, {"ipad", "20x20", "2x"}, {"ipad", "40x40", "1x"}}},
	{Name: "Icon-58.png", Size: 58, Slots: []Slot{{"iphone", "29x29", "2x"}, {"ipad", "29x29", "2x"}}},
	{Name: "Icon-60.png", Size: 60, Slots: []Slot{{"iphone", "20x20", "3x"}}},
	{Name: "Icon-76.png", Size: 76, Slots: []Slot{{"ipad", "76x76", "1x"}}},
	{Name: "Icon-80.png", Size: 80, Slots: []Slot{{"iphone", "40x40", "2x"}, {"ipad", "40x40", "2x"}}},
	{Name: "Icon-87.png", Size: 87, Slots: []Slot{{"iphone", "29x29", "3x"}}},
	{Name: "Icon-120.png", Size: 120, Slots: []Slot{{"iphone", "60x60", "2x"}, {"iphone", "40x40", "3x"}}},
	{Name: "Icon-152.png", Size: 152, Slots: []Slot{{"ipad", "76x76", "2x"}}},
	{Name: "Icon-167.png", Size: 167, Slots: []Slot{{"ipad", "83.5x83.5", "2x"}}},
	{Name: "Icon-180.png", Size: 180, Slots: []Slot{{"iphone", "60x60", "3x"}}},
	{Name: "Icon-1024.png", Size: 1024, Slots: []Slot{{"ios-marketing", "1024x1024", "1x"}}},
}

// Validate checks that every size is positive and every name is unique.
func (t SizeTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("size table is empty")
	}
	seen := make(map[string]struct{}, len(t))
	for _, icon := range t {
		if icon.Name == "" {
			return fmt.Errorf("icon of size %d has no name", icon.Size)
		}
		if icon.Size <= 0 {
			return fmt.Errorf("icon %s: size must be positive, got %d", icon.Name, icon.Size)
		}
		if _, dup := seen[icon.Name]; dup {
			return fmt.Errorf("icon %s listed twice", icon.Name)
		}
		seen[icon.Name] = struct{}{}
	}
	return nil
}
