package requests

// ExecuteEMR is the single RPC-style request the dashboard sends to the
// gateway. Params is an open bag; each operation documents the keys it reads.
type ExecuteEMR struct {
	HospitalID string                 `json:"hospital_id" validate:"required"`
	Operation  string                 `json:"operation" validate:"required"`
	Params     map[string]interface{} `json:"params"`
}
