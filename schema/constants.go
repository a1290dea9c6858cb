package schema

// Custom string types for type safety.
type (
	// DomainName represents one of the fixed trust service categories.
	DomainName string

	// QuestionKind represents how a question is answered.
	QuestionKind string

	// ReadinessLabel represents the readiness classification of a score.
	ReadinessLabel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for assessment history.
	DatabaseBackend string

	// DeliveryTransport represents the transport used to deliver reports.
	DeliveryTransport string
)

// All control domains, in catalog order.
const (
	SecurityDomain            DomainName = "Security"
	AvailabilityDomain        DomainName = "Availability"
	ProcessingIntegrityDomain DomainName = "Processing Integrity"
	ConfidentialityDomain     DomainName = "Confidentiality"
	PrivacyDomain             DomainName = "Privacy"
)

// All question kinds supported.
const (
	ChoiceQuestion QuestionKind = "choice"
	ScaleQuestion  QuestionKind = "scale"
)

// Readiness labels, from most to least prepared.
const (
	WellPrepared      ReadinessLabel = "Well Prepared"
	PartiallyPrepared ReadinessLabel = "Partially Prepared"
	EarlyStage        ReadinessLabel = "Early Stage"
	NeedsImprovement  ReadinessLabel = "Needs Significant Improvement"
)

// All output modes supported.
const (
	CSVOut      OutputMode = "csv"
	TextOut     OutputMode = "text" // default
	JSONOut     OutputMode = "json"
	MarkdownOut OutputMode = "markdown"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All delivery transports supported.
const (
	EmailJSTransport DeliveryTransport = "emailjs"
	OutboxTransport  DeliveryTransport = "outbox"
	NoneTransport    DeliveryTransport = "none" // default
)

// UserInfoSection is the identifier of the respondent pseudo-section.
const UserInfoSection = "user-info"

// AllDomains lists every domain in catalog order.
var AllDomains = []DomainName{
	SecurityDomain,
	AvailabilityDomain,
	ProcessingIntegrityDomain,
	ConfidentialityDomain,
	PrivacyDomain,
}

// AllReadinessLabels lists every label from best to worst.
var AllReadinessLabels = []ReadinessLabel{WellPrepared, PartiallyPrepared, EarlyStage, NeedsImprovement}

// ValidDomains lists all valid domains.
var ValidDomains = map[DomainName]struct{}{
	SecurityDomain:            {},
	AvailabilityDomain:        {},
	ProcessingIntegrityDomain: {},
	ConfidentialityDomain:     {},
	PrivacyDomain:             {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:      {},
	TextOut:     {},
	JSONOut:     {},
	MarkdownOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidDeliveryTransports lists all valid delivery transports.
var ValidDeliveryTransports = map[DeliveryTransport]struct{}{
	EmailJSTransport: {},
	OutboxTransport:  {},
	NoneTransport:    {},
}
