package deployment

import (
	"context"
	"errors"
	"os"

	"github.com/giantswarm/microerror"
	"gopkg.in/yaml.v2"
)

// Source fetches the current deployment config. Sources are read on every
// page load, so implementations must not cache stale values indefinitely.
type Source interface {
	DeploymentConfig(ctx context.Context) (DeploymentConfig, error)
}

// StaticSource always returns the same values.
type StaticSource struct {
	Values Values
}

func (s StaticSource) DeploymentConfig(ctx context.Context) (DeploymentConfig, error) {
	return NewDeploymentConfig(s.Values), nil
}

// FileSource reads option values from a YAML file. Options missing from the
// file keep their defaults.
type FileSource struct {
	Path string
}

func (s FileSource) DeploymentConfig(ctx context.Context) (DeploymentConfig, error) {
	values, err := GetValuesFromFile(s.Path)
	if err != nil {
		return DeploymentConfig{}, microerror.Mask(err)
	}
	return NewDeploymentConfig(values), nil
}

func GetValuesFromFile(fileLocation string) (Values, error) {
	values := DefaultValues()

	file, err := os.ReadFile(fileLocation)
	if errors.Is(err, os.ErrNotExist) {
		return values, microerror.Maskf(notFoundError, "values file %s does not exist", fileLocation)
	} else if err != nil {
		return values, microerror.Maskf(invalidConfigError, "failed to read values from file: %s", err)
	}

	if err := yaml.UnmarshalStrict(file, &values); err != nil {
		return values, microerror.Maskf(invalidConfigError, "failed to read values from file: %s", err)
	}

	return values, nil
}
