package api

import (
	"context"
	"errors"
	"fmt"
)

const projectFields = `
    id
    name
    patternText
    translatedText
    difficultyLevel
    estimatedTime
    yarnWeight
    hookSize
    notes
    imageData
    isCompleted
    userId
    createdAt
    updatedAt`

const projectsQuery = `query Projects {
  projects {` + projectFields + `
  }
}`

const projectQuery = `query Project($projectId: Int!) {
  project(projectId: $projectId) {` + projectFields + `
  }
}`

const createProjectMutation = `mutation CreateProject($input: CrochetProjectInput!) {
  createProject(input: $input) {` + projectFields + `
  }
}`

const updateProjectMutation = `mutation UpdateProject($projectId: Int!, $input: CrochetProjectUpdateInput!) {
  updateProject(projectId: $projectId, input: $input) {` + projectFields + `
  }
}`

const deleteProjectMutation = `mutation DeleteProject($projectId: Int!) {
  deleteProject(projectId: $projectId)
}`

// Projects lists the current user's projects.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var out struct {
		Projects []Project `json:"projects"`
	}
	if err := c.do(ctx, "Projects", projectsQuery, nil, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// Project fetches one project by id.
func (c *Client) Project(ctx context.Context, id int) (*Project, error) {
	var out struct {
		Project *Project `json:"project"`
	}
	vars := map[string]any{"projectId": id}
	if err := c.do(ctx, "Project", projectQuery, vars, &out); err != nil {
		return nil, err
	}
	if out.Project == nil {
		return nil, fmt.Errorf("api: project %d: %w", id, ErrNotFound)
	}
	return out.Project, nil
}

// CreateProject stores a new project.
func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (*Project, error) {
	if in.Name == "" {
		return nil, errors.New("api: project name is required")
	}
	var out struct {
		Project Project `json:"createProject"`
	}
	vars := map[string]any{"input": in}
	if err := c.do(ctx, "CreateProject", createProjectMutation, vars, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

// UpdateProject applies a partial update to a project.
func (c *Client) UpdateProject(ctx context.Context, id int, update ProjectUpdate) (*Project, error) {
	var out struct {
		Project *Project `json:"updateProject"`
	}
	vars := map[string]any{"projectId": id, "input": update}
	if err := c.do(ctx, "UpdateProject", updateProjectMutation, vars, &out); err != nil {
		return nil, err
	}
	if out.Project == nil {
		return nil, fmt.Errorf("api: project %d: %w", id, ErrNotFound)
	}
	return out.Project, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id int) error {
	var out struct {
		Deleted bool `json:"deleteProject"`
	}
	vars := map[string]any{"projectId": id}
	if err := c.do(ctx, "DeleteProject", deleteProjectMutation, vars, &out); err != nil {
		return err
	}
	if !out.Deleted {
		return fmt.Errorf("api: project %d: %w", id, ErrNotFound)
	}
	return nil
}
