package model

// DeploymentStatus is the lifecycle state of a warehouse deployment. There is
// no pending state: a deployment exists only once the backend has accepted the
// deploy request and is already running it.
type DeploymentStatus string

const (
	DeploymentStatusRunning   DeploymentStatus = "running"
	DeploymentStatusCompleted DeploymentStatus = "completed"
	DeploymentStatusFailed    DeploymentStatus = "failed"
)

func (s DeploymentStatus) Terminal() bool {
	return s == DeploymentStatusCompleted || s == DeploymentStatusFailed
}

// DbtRunResult summarizes the dbt run phase of a deployment.
type DbtRunResult struct {
	Success         bool `json:"success"`
	TablesCreated   int  `json:"tables_created"`
	ModelsSucceeded int  `json:"models_succeeded"`
	ModelsFailed    int  `json:"models_failed"`
}

// DbtTestResult summarizes the dbt test phase, present only when tests ran.
type DbtTestResult struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Warned int `json:"warned"`
}

// DeploymentJob is a single fetch of one deployment's state. Like
// MigrationJob it is replaced wholesale on every fetch; the run and test
// blocks stay nil until the backend reports them.
type DeploymentJob struct {
	DeploymentID string           `json:"deployment_id"`
	Status       DeploymentStatus `json:"status"`

	DbtRun  *DbtRunResult  `json:"dbt_run,omitempty"`
	DbtTest *DbtTestResult `json:"dbt_test,omitempty"`

	Error string `json:"error,omitempty"`
}
