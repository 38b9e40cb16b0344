package players

import (
	"github.com/oapi-codegen/nullable"

	"github.com/village-coders/attendance-api/internal/domain"
)

type CreatePlayerInput struct {
	Name            string
	Position        domain.Position
	JerseyNumber    int
	AlwaysAvailable bool
}

// UpdatePlayerInput carries a partial update. Each field distinguishes
// omitted from explicit null from a value; none of these fields accept null.
type UpdatePlayerInput struct {
	Name            nullable.Nullable[string]
	Position        nullable.Nullable[domain.Position]
	JerseyNumber    nullable.Nullable[int]
	AlwaysAvailable nullable.Nullable[bool]
}
