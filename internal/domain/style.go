package domain

// StyleOption describes one selectable visual style.
type StyleOption struct {
	Name        string `json:"name"`
	Thumbnail   string `json:"thumbnail"`
	Preview     string `json:"preview"`
	Description string `json:"description"`
}

var catalog = [...]StyleOption{
	{
		Name:        "Urban Glitch",
		Thumbnail:   "/thumbnails/glitch.gif",
		Preview:     "/previews/glitch.mp4",
		Description: "Edgy, neon, and chaotic. Perfect for trap or electronic beats.",
	},
	{
		Name:        "VHS Retro",
		Thumbnail:   "/thumbnails/vhs.gif",
		Preview:     "/previews/vhs.mp4",
		Description: "Old-school grain with 90s nostalgia. Best for lofi or synth.",
	},
	{
		Name:        "Anime Visualizer",
		Thumbnail:   "/thumbnails/anime.gif",
		Preview:     "/previews/anime.mp4",
		Description: "Animated vibes, inspired by AMVs. Ideal for pop or K-rap.",
	},
	{
		Name:        "Dreamscape AI",
		Thumbnail:   "/thumbnails/ai.gif",
		Preview:     "/previews/ai.mp4",
		Description: "Surreal, AI-generated worlds. Works great with ambient or R&B.",
	},
	{
		Name:        "Cyberpunk City",
		Thumbnail:   "/thumbnails/cyberpunk.gif",
		Preview:     "/previews/cyberpunk.mp4",
		Description: "Futuristic, neon-lit cityscapes. Works great with synthwave or EDM.",
	},
	{
		Name:        "Street Graffiti",
		Thumbnail:   "/thumbnails/graffiti.gif",
		Preview:     "/previews/graffiti.mp4",
		Description: "Bold, animated street art. Perfect for hip-hop or underground rap.",
	},
	{
		Name:        "Cosmic Nebula",
		Thumbnail:   "/thumbnails/nebula.gif",
		Preview:     "/previews/nebula.mp4",
		Description: "Epic space visuals and nebulas. Best for chill, spacey beats.",
	},
	{
		Name:        "Matrix Code",
		Thumbnail:   "/thumbnails/matrix.gif",
		Preview:     "/previews/matrix.mp4",
		Description: "Code rain, digital effects. Killer for dark techno or cyber themes.",
	},
}

// Catalog returns the styles in display order. Callers get their own copy.
func Catalog() []StyleOption {
	out := make([]StyleOption, len(catalog))
	copy(out, catalog[:])
	return out
}

// StyleByName looks up a catalog entry by exact name.
func StyleByName(name string) (StyleOption, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return StyleOption{}, false
}
