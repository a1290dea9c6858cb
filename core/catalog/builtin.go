package catalog

import (
	"sync"

	"github.com/huangsam/readiness/schema"
)

// Option sets shared by many questions.
var (
	yesPartialPlannedNo = []string{"Yes", "Partially", "Planned", "No"}
	alwaysToNever       = []string{"Always", "Sometimes", "Rarely", "Never"}
)

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in SOC 2 readiness catalog.
// It panics if the built-in data is malformed, which is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(DefaultDomains(), DefaultSections())
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// DefaultDomains returns the five trust service categories and their controls.
func DefaultDomains() []schema.Domain {
	return []schema.Domain{
		{Name: schema.SecurityDomain, Controls: []string{
			"Access Control", "System Security", "Network Security", "Endpoint Protection",
			"Encryption", "Authentication", "Security Monitoring",
		}},
		{Name: schema.AvailabilityDomain, Controls: []string{
			"System Availability", "Business Continuity", "Disaster Recovery",
			"Incident Management", "Performance Monitoring",
		}},
		{Name: schema.ProcessingIntegrityDomain, Controls: []string{
			"Data Accuracy", "Data Validation", "Error Handling", "System Processing", "Quality Assurance",
		}},
		{Name: schema.ConfidentialityDomain, Controls: []string{
			"Data Classification", "Data Handling", "Information Lifecycle",
			"Confidentiality Agreements", "Secure Disposal",
		}},
		{Name: schema.PrivacyDomain, Controls: []string{
			"Privacy Notice", "Data Collection", "Data Use", "Data Disclosure",
			"Data Subject Rights", "Data Quality", "Privacy Monitoring",
		}},
	}
}

// DefaultSections returns the questionnaire steps in presentation order.
func DefaultSections() []schema.Section {
	return []schema.Section{
		{ID: schema.UserInfoSection, Title: "Organization Info"},
		{ID: "security", Title: "Security Controls", Domain: schema.SecurityDomain, Questions: []schema.Question{
			choice("access_control_1", "Access Control", "Does your organization have a formal access control policy?",
				"Implemented", "Partially Implemented", "Planned", "Not Implemented"),
			choice("access_control_2", "Access Control", "How often are user access rights reviewed?",
				"Quarterly", "Semi-annually", "Annually", "Not reviewed"),
			choice("system_security_1", "System Security", "Are security patches applied to systems within 30 days of release?",
				alwaysToNever...),
			choice("network_security_1", "Network Security", "Is network traffic monitored and analyzed for suspicious activity?",
				yesPartialPlannedNo...),
			choice("endpoint_protection_1", "Endpoint Protection", "Do all endpoints have antivirus/anti-malware solutions installed?",
				yesPartialPlannedNo...),
			choice("encryption_1", "Encryption", "Is data encrypted at rest and in transit?",
				"Both", "In transit only", "At rest only", "Neither"),
			choice("authentication_1", "Authentication", "Is multi-factor authentication required for critical systems?",
				yesPartialPlannedNo...),
			scale("security_monitoring_1", "Security Monitoring", "How comprehensive is your security monitoring program?",
				"Not implemented", "Basic", "Moderate", "Comprehensive", "Advanced"),
		}},
		{ID: "availability", Title: "Availability Controls", Domain: schema.AvailabilityDomain, Questions: []schema.Question{
			choice("system_availability_1", "System Availability", "Do you have defined system availability targets and monitor them?",
				yesPartialPlannedNo...),
			choice("business_continuity_1", "Business Continuity", "Does your organization have a business continuity plan?",
				"Yes", "In development", "Planned", "No"),
			choice("disaster_recovery_1", "Disaster Recovery", "How often is your disaster recovery plan tested?",
				"Quarterly", "Semi-annually", "Annually", "Not tested"),
			choice("incident_management_1", "Incident Management", "Do you have a formal incident response process?",
				yesPartialPlannedNo...),
			scale("performance_monitoring_1", "Performance Monitoring", "How would you rate your system performance monitoring capabilities?",
				"None", "Basic", "Moderate", "Comprehensive", "Advanced"),
		}},
		{ID: "processing-integrity", Title: "Processing Integrity", Domain: schema.ProcessingIntegrityDomain, Questions: []schema.Question{
			choice("data_accuracy_1", "Data Accuracy", "Are there controls to ensure accurate data processing?",
				yesPartialPlannedNo...),
			choice("data_validation_1", "Data Validation", "Is input data validated before processing?",
				alwaysToNever...),
			choice("error_handling_1", "Error Handling", "Do you have formal error handling procedures?",
				yesPartialPlannedNo...),
			choice("system_processing_1", "System Processing", "Are system processing verifications performed?",
				yesPartialPlannedNo...),
			scale("quality_assurance_1", "Quality Assurance", "How would you rate your quality assurance program?",
				"Non-existent", "Basic", "Moderate", "Comprehensive", "Advanced"),
		}},
		{ID: "confidentiality", Title: "Confidentiality Controls", Domain: schema.ConfidentialityDomain, Questions: []schema.Question{
			choice("data_classification_1", "Data Classification", "Do you have a data classification policy?",
				yesPartialPlannedNo...),
			choice("data_handling_1", "Data Handling", "Are there procedures for handling confidential information?",
				yesPartialPlannedNo...),
			choice("information_lifecycle_1", "Information Lifecycle", "Is information lifecycle management implemented?",
				yesPartialPlannedNo...),
			choice("confidentiality_agreements_1", "Confidentiality Agreements", "Are confidentiality agreements required for employees and vendors?",
				yesPartialPlannedNo...),
			choice("secure_disposal_1", "Secure Disposal", "Are secure data disposal procedures implemented?",
				yesPartialPlannedNo...),
		}},
		{ID: "privacy", Title: "Privacy Controls", Domain: schema.PrivacyDomain, Questions: []schema.Question{
			choice("privacy_notice_1", "Privacy Notice", "Do you have a privacy notice that is readily available to users?",
				yesPartialPlannedNo...),
			choice("data_collection_1", "Data Collection", "Is personal data collection limited to what is necessary?",
				yesPartialPlannedNo...),
			choice("data_use_1", "Data Use", "Is personal data use limited to purposes specified in the privacy notice?",
				yesPartialPlannedNo...),
			choice("data_disclosure_1", "Data Disclosure", "Are personal data disclosures to third parties controlled?",
				yesPartialPlannedNo...),
			choice("data_subject_rights_1", "Data Subject Rights", "Do you have procedures to honor data subject rights?",
				yesPartialPlannedNo...),
			choice("data_quality_1", "Data Quality", "Are there controls to ensure personal data quality and accuracy?",
				yesPartialPlannedNo...),
			scale("privacy_monitoring_1", "Privacy Monitoring", "How would you rate your privacy compliance monitoring?",
				"None", "Basic", "Moderate", "Comprehensive", "Advanced"),
		}},
	}
}

func choice(id, control, text string, options ...string) schema.Question {
	return schema.Question{
		ID:      id,
		Text:    text,
		Kind:    schema.ChoiceQuestion,
		Options: options,
		Control: control,
	}
}

// scale builds a 1..len(labels) ordinal question.
func scale(id, control, text string, labels ...string) schema.Question {
	byValue := make(map[int]string, len(labels))
	for i, label := range labels {
		byValue[i+1] = label
	}
	return schema.Question{
		ID:          id,
		Text:        text,
		Kind:        schema.ScaleQuestion,
		ScaleMin:    1,
		ScaleMax:    len(labels),
		ScaleLabels: byValue,
		Control:     control,
	}
}
