package project

// CreateProjectInput is the payload for creating a project. The owning user
// is always taken from the authenticated session, never from the client.
type CreateProjectInput struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
}

// UpdateProjectInput carries a partial update; nil fields are left untouched.
type UpdateProjectInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
}

// Fields maps the non-nil members to column updates.
func (in UpdateProjectInput) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Budget != nil {
		fields["budget"] = *in.Budget
	}
	return fields
}
