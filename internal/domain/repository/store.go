package repository

// Store exposes the five collections of the course planner.
// Writes across collections are independent; there is no cross-collection transaction.
type Store interface {
	Users() UserRepository
	Workspaces() WorkspaceRepository
	Categories() CategoryRepository
	Places() PlaceRepository
	CategoryPlaces() CategoryPlaceRepository
}
