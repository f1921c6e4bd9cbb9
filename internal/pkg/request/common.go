package request

// ByIDRequest binds the ":id" path parameter shared by detail endpoints.
// The uuid rule rejects malformed ids before they reach a repository.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
