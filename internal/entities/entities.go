// Package entities defines the data shapes persisted by the tracker
// (Project, its embedded PRD, and Task) plus the derived summary and
// report shapes returned by read operations.
//
// Everything here is pure data and pure validation: no I/O, no clocks.
// The store is responsible for assigning ids and timestamps; this
// package only checks that what it is handed is well-formed.
package entities

import "fmt"

// --- Project status enum ---

// ProjectStatus tracks the overall lifecycle of a project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

var validProjectStatuses = map[ProjectStatus]bool{
	ProjectPlanning:   true,
	ProjectInProgress: true,
	ProjectOnHold:     true,
	ProjectCompleted:  true,
	ProjectCancelled:  true,
}

// ValidateProjectStatus returns an error if the status is not recognized.
func ValidateProjectStatus(s ProjectStatus) error {
	if !validProjectStatuses[s] {
		return fmt.Errorf("invalid project status %q: must be one of: planning, in_progress, on_hold, completed, cancelled", s)
	}
	return nil
}

// --- Task status enum ---

// TaskStatus tracks the lifecycle of a single task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
	TaskCancelled  TaskStatus = "cancelled"
)

var validTaskStatuses = map[TaskStatus]bool{
	TaskTodo:       true,
	TaskInProgress: true,
	TaskBlocked:    true,
	TaskReview:     true,
	TaskDone:       true,
	TaskCancelled:  true,
}

// ValidateTaskStatus returns an error if the status is not recognized.
func ValidateTaskStatus(s TaskStatus) error {
	if !validTaskStatuses[s] {
		return fmt.Errorf("invalid task status %q: must be one of: todo, in_progress, blocked, review, done, cancelled", s)
	}
	return nil
}

// --- Priority enum ---

// Priority ranks requirements and tasks.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var validPriorities = map[Priority]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// ValidatePriority returns an error if the priority is not recognized.
func ValidatePriority(p Priority) error {
	if !validPriorities[p] {
		return fmt.Errorf("invalid priority %q: must be one of: low, medium, high, critical", p)
	}
	return nil
}

// --- Core data structures ---

// Requirement is one entry in a PRD's requirements list. Its ID is
// unique within the PRD, not globally.
type Requirement struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Priority           Priority `json:"priority"`
	AcceptanceCriteria []string `json:"acceptanceCriteria"`
	Tags               []string `json:"tags,omitempty"`
}

// Milestone is a named date on a PRD timeline.
type Milestone struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}

// Timeline holds optional start/end dates and milestones for a PRD.
// An all-zero Timeline is valid; the field is required on PRD but may
// be empty.
type Timeline struct {
	StartDate  string      `json:"startDate,omitempty"`
	EndDate    string      `json:"endDate,omitempty"`
	Milestones []Milestone `json:"milestones,omitempty"`
}

// RiskMitigation pairs a risk with its mitigation.
type RiskMitigation struct {
	Risk       string `json:"risk"`
	Mitigation string `json:"mitigation"`
}

// PRD is the product requirements document embedded in a Project.
// It has no identity of its own; it lives and dies with its project.
type PRD struct {
	Title              string           `json:"title"`
	Overview           string           `json:"overview"`
	ProblemStatement   string           `json:"problemStatement"`
	Goals              []string         `json:"goals"`
	Requirements       []Requirement    `json:"requirements"`
	AcceptanceCriteria []string         `json:"acceptanceCriteria"`
	Timeline           Timeline         `json:"timeline"`
	Assumptions        []string         `json:"assumptions,omitempty"`
	Constraints        []string         `json:"constraints,omitempty"`
	RisksAndMitigation []RiskMitigation `json:"risksAndMitigation,omitempty"`
}

// Project is the root record for a tracked project, persisted one file
// per id. The Tasks list is a denormalized convenience cache; it may
// be stale. Task.ProjectID is the authoritative relation.
type Project struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	PRD           PRD           `json:"prd"`
	Status        ProjectStatus `json:"status"`
	Tasks         []string      `json:"tasks"`
	Tags          []string      `json:"tags"`
	Repository    string        `json:"repository,omitempty"`
	Documentation string        `json:"documentation,omitempty"`
	Created       string        `json:"created"`
	Updated       string        `json:"updated"`
}

// Task is an individually persisted unit of work belonging to a
// project. Subtasks and Dependencies hold task ids; both are
// informational lists with no referential-integrity guarantee.
type Task struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"projectId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         TaskStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	Subtasks       []string   `json:"subtasks"`
	Dependencies   []string   `json:"dependencies"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	ActualHours    *float64   `json:"actualHours,omitempty"`
	Assignee       string     `json:"assignee,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	Created        string     `json:"created"`
	Updated        string     `json:"updated"`
	DueDate        string     `json:"dueDate,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// --- Derived shapes ---

// ProjectSummary is the list-view projection of a project.
// TaskCount and CompletedTasks are recomputed from the live task
// collection on every call, never cached.
type ProjectSummary struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Status         ProjectStatus `json:"status"`
	Tags           []string      `json:"tags"`
	TaskCount      int           `json:"taskCount"`
	CompletedTasks int           `json:"completedTasks"`
	Updated        string        `json:"updated"`
}

// TaskSummary is the list-view projection of a task.
type TaskSummary struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"projectId"`
	Title     string     `json:"title"`
	Status    TaskStatus `json:"status"`
	Priority  Priority   `json:"priority"`
	Assignee  string     `json:"assignee,omitempty"`
	DueDate   string     `json:"dueDate,omitempty"`
	Updated   string     `json:"updated"`
}

// DeadlineEntry is one upcoming deadline in a status report.
type DeadlineEntry struct {
	TaskID  string `json:"taskId"`
	Title   string `json:"title"`
	DueDate string `json:"dueDate"`
}

// ProjectStatusReport is the rollup computed by getProjectStatus.
type ProjectStatusReport struct {
	ProjectID            string          `json:"projectId"`
	Name                 string          `json:"name"`
	Status               ProjectStatus   `json:"status"`
	TaskCount            int             `json:"taskCount"`
	CompletedTasks       int             `json:"completedTasks"`
	CompletionPercentage float64         `json:"completionPercentage"`
	TotalEstimatedHours  float64         `json:"totalEstimatedHours"`
	TotalActualHours     float64         `json:"totalActualHours"`
	UpcomingDeadlines    []DeadlineEntry `json:"upcomingDeadlines"`
}
