package orchestrator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sprintertech/sprinter-omnichain/verifier"
)

// DecodeIntent unmarshals the JSON form of an intent of the given kind.
func DecodeIntent(kind verifier.Kind, data []byte) (Intent, error) {
	var intent Intent
	switch kind {
	case verifier.LaunchProject:
		intent = &LaunchProject{}
	case verifier.QueueRules:
		intent = &QueueRules{}
	case verifier.SendPayouts:
		intent = &SendPayouts{}
	case verifier.DeployToken:
		intent = &DeployToken{}
	case verifier.DeploySuckers:
		intent = &DeploySuckers{}
	case verifier.DeployRevnet:
		intent = &DeployRevnet{}
	default:
		return nil, fmt.Errorf("unsupported intent %s", kind)
	}

	d := json.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	err := d.Decode(intent)
	if err != nil {
		return nil, fmt.Errorf("invalid %s intent: %w", kind, err)
	}
	return intent, nil
}
