package deployment

import "errors"

var (
	ErrNoWarehouseSelected  = errors.New("deployment: no warehouse type selected")
	ErrUnknownWarehouse     = errors.New("deployment: unknown warehouse type")
	ErrUnknownFabricAuth    = errors.New("deployment: unknown fabric authentication mode")
	ErrDeploymentInProgress = errors.New("deployment: a deployment is already in progress")
	ErrClosed               = errors.New("deployment: deployer is closed")
)
