// Package rules implements the detection procedures the engine runs:
// one matcher per rule, each triggering on a node kind, validating a
// structural/type signature and reporting confirmed violations.
package rules

// Fully qualified metadata names of the well-known types the rules
// depend on. Resolution failure for any name a rule requires makes that
// rule inert for the whole compilation.
const (
	typeObject          = "System.Object"
	typeCertCallback    = "System.Net.Security.RemoteCertificateValidationCallback"
	typeX509Certificate = "System.Security.Cryptography.X509Certificates.X509Certificate"
	typeX509Chain       = "System.Security.Cryptography.X509Certificates.X509Chain"
	typeSslPolicyErrors = "System.Net.Security.SslPolicyErrors"

	typeIntPtr      = "System.IntPtr"
	typeUIntPtr     = "System.UIntPtr"
	typeHandleRef   = "System.Runtime.InteropServices.HandleRef"
	typeIDisposable = "System.IDisposable"
)
