package tokens

import (
	"net/url"
	"strings"

	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/exceptions"
)

// TokenEndpoint derives the authorization server's token URL from a
// credential's FHIR base URL. The rule is selected by vendor rather than
// sniffed from the URL shape, so a misconfigured vendor fails loudly
// instead of guessing.
func TokenEndpoint(vendor, baseURL string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", exceptions.WrapWithError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevTokenEndpoint)
	}

	switch vendor {
	case constvars.VendorEpic:
		return epicTokenEndpoint(parsed), nil
	default:
		return genericTokenEndpoint(parsed), nil
	}
}

// Epic hosts its authorization server under the Interconnect segment of the
// FHIR base, e.g. /Interconnect-PRD-FHIR/api/FHIR/R4 serves tokens at
// /Interconnect-PRD-FHIR/oauth2/token.
func epicTokenEndpoint(base *url.URL) string {
	segments := strings.Split(strings.Trim(base.Path, "/"), "/")
	for i, segment := range segments {
		if strings.Contains(strings.ToLower(segment), "interconnect") {
			base.Path = "/" + strings.Join(segments[:i+1], "/") + "/oauth2/token"
			return base.String()
		}
	}
	return genericTokenEndpoint(base)
}

func genericTokenEndpoint(base *url.URL) string {
	base.Path = strings.TrimSuffix(base.Path, "/") + "/oauth2/token"
	return base.String()
}
