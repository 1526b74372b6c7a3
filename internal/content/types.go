package content

import "strconv"

// Wall is one display surface of the gallery. JSON field names match the gallery API.
type Wall struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Texture  string   `json:"texture,omitempty"`
	Color    string   `json:"color,omitempty"`
	Projects []string `json:"projects"`
}

// Placement locates a project thumbnail on a wall, in wall-local units.
type Placement struct {
	Wall  int     `json:"wall"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// Project is one portfolio entry. Content is HTML rendered from the markdown body and is empty
// in list views.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Position    Placement `json:"position"`
	Content     string    `json:"content"`
}

// Vec3 is a plain position record.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Scene is the gallery as served to renderers.
type Scene struct {
	Name            string `json:"name"`
	Walls           []Wall `json:"walls"`
	InitialPosition Vec3   `json:"initialPosition"`
}

const (
	// DefaultWallColor is used when a wall file sets no color.
	DefaultWallColor = "#ffffff"
	// DefaultEyeHeight is the initial camera height of a scene.
	DefaultEyeHeight = 1.6
)

// DefaultWall is the stand-in record for a wall whose file is missing or invalid.
func DefaultWall(id int) Wall {
	return Wall{ID: id, Name: "Wall " + strconv.Itoa(id), Color: DefaultWallColor, Projects: []string{}}
}

// FallbackScene is served when the content store cannot be read at all.
func FallbackScene(wallCount int) Scene {
	walls := make([]Wall, wallCount)
	for i := range walls {
		walls[i] = DefaultWall(i)
	}
	return Scene{Name: "Error Gallery", Walls: walls, InitialPosition: Vec3{Y: DefaultEyeHeight}}
}
