package settings

import "github.com/giantswarm/microerror"

var renderFailedError = &microerror.Error{
	Kind: "renderFailedError",
}

// IsRenderFailed asserts renderFailedError.
func IsRenderFailed(err error) bool {
	return microerror.Cause(err) == renderFailedError
}
