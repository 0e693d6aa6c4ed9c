// Package templates ships the built-in schema catalog: ready-made schemas for
// common dataset shapes. Templates are plain data; they carry no generation
// logic.
package templates

import (
	"sort"

	"github.com/inferloop/tabsynth/pkg/models"
)

// All returns every built-in template keyed by its catalog name.
func All() map[string]*models.Schema {
	return map[string]*models.Schema{
		"customer_database":      CustomerDatabase(),
		"ecommerce_transactions": EcommerceTransactions(),
		"employee_records":       EmployeeRecords(),
		"healthcare_records":     HealthcareRecords(),
		"social_media_posts":     SocialMediaPosts(),
		"iot_sensor_data":        IoTSensorData(),
	}
}

// Names returns the catalog names in sorted order.
func Names() []string {
	all := All()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named template, or nil when absent.
func Lookup(name string) *models.Schema {
	return All()[name]
}

// CustomerDatabase models customer identity and demographics.
func CustomerDatabase() *models.Schema {
	return &models.Schema{
		Name:        "Customer Database",
		Description: "Complete customer information with demographics and preferences",
		Fields: []models.FieldSpec{
			{Name: "customer_id", Type: models.FieldTypeInteger, Subtype: "id",
				Description: "Unique customer identifier",
				Constraints: models.Constraints{Unique: true, MinVal: models.Float(1), MaxVal: models.Float(999999)}},
			{Name: "full_name", Type: models.FieldTypeText, Subtype: "name",
				Description: "Customer name",
				Constraints: models.Constraints{NullPercentage: 2}},
			{Name: "email", Type: models.FieldTypeText, Subtype: "email",
				Description: "Customer email address",
				Constraints: models.Constraints{Unique: true, NullPercentage: 1}},
			{Name: "phone", Type: models.FieldTypeText, Subtype: "phone",
				Description: "Customer phone number",
				Constraints: models.Constraints{NullPercentage: 5}},
			{Name: "address", Type: models.FieldTypeText, Subtype: "address",
				Description: "Street address",
				Constraints: models.Constraints{NullPercentage: 5}},
			{Name: "city", Type: models.FieldTypeText, Subtype: "city",
				Description: "City of residence"},
			{Name: "age", Type: models.FieldTypeInteger, Subtype: "age",
				Description: "Customer age",
				Constraints: models.Constraints{MinVal: models.Float(18), MaxVal: models.Float(80)}},
			{Name: "signup_date", Type: models.FieldTypeDate, Subtype: "signup_date",
				Description: "Account creation date",
				Constraints: models.Constraints{StartDate: "2020-01-01", EndDate: "2024-12-31"}},
			{Name: "is_active", Type: models.FieldTypeBoolean,
				Description: "Whether the account is active"},
		},
	}
}

// EcommerceTransactions models online purchase events.
func EcommerceTransactions() *models.Schema {
	return &models.Schema{
		Name:        "E-commerce Transactions",
		Description: "Online purchase transactions with amounts and timing",
		Fields: []models.FieldSpec{
			{Name: "transaction_id", Type: models.FieldTypeInteger, Subtype: "id",
				Constraints: models.Constraints{Unique: true, MinVal: models.Float(1), MaxVal: models.Float(9999999)}},
			{Name: "customer_email", Type: models.FieldTypeText, Subtype: "email"},
			{Name: "amount", Type: models.FieldTypeFloat, Subtype: "transaction_amount",
				Constraints: models.Constraints{MinVal: models.Float(0.01), MaxVal: models.Float(5000)}},
			{Name: "transaction_date", Type: models.FieldTypeDate, Subtype: "transaction_date",
				Constraints: models.Constraints{StartDate: "2023-01-01", EndDate: "2024-12-31"}},
			{Name: "payment_method", Type: models.FieldTypeCategorical,
				Constraints: models.Constraints{Categories: []string{"credit_card", "debit_card", "paypal", "bank_transfer"}}},
			{Name: "status", Type: models.FieldTypeCategorical,
				Constraints: models.Constraints{Categories: []string{"completed", "pending", "refunded", "failed"}}},
		},
	}
}

// EmployeeRecords models HR data.
func EmployeeRecords() *models.Schema {
	return &models.Schema{
		Name:        "Employee Records",
		Description: "Employee roster with compensation and tenure",
		Fields: []models.FieldSpec{
			{Name: "employee_id", Type: models.FieldTypeInteger, Subtype: "id",
				Constraints: models.Constraints{Unique: true, MinVal: models.Float(1000), MaxVal: models.Float(99999)}},
			{Name: "full_name", Type: models.FieldTypeText, Subtype: "name"},
			{Name: "job_title", Type: models.FieldTypeText, Subtype: "job_title"},
			{Name: "department", Type: models.FieldTypeCategorical,
				Constraints: models.Constraints{Categories: []string{"Engineering", "Sales", "Marketing", "Finance", "HR", "Operations"}}},
			{Name: "salary", Type: models.FieldTypeFloat, Subtype: "salary",
				Constraints: models.Constraints{MinVal: models.Float(35000), MaxVal: models.Float(180000)}},
			{Name: "hire_date", Type: models.FieldTypeDate, Subtype: "hire_date",
				Constraints: models.Constraints{StartDate: "2015-01-01", EndDate: "2024-12-31"}},
			{Name: "performance_score", Type: models.FieldTypeFloat, Subtype: "score",
				Constraints: models.Constraints{MinVal: models.Float(0), MaxVal: models.Float(100), NullPercentage: 3}},
		},
	}
}

// HealthcareRecords models patient visit data.
func HealthcareRecords() *models.Schema {
	return &models.Schema{
		Name:        "Healthcare Records",
		Description: "Patient visits with diagnoses and medications",
		Fields: []models.FieldSpec{
			{Name: "patient_id", Type: models.FieldTypeText, Subtype: "patient_id",
				Constraints: models.Constraints{Unique: true}},
			{Name: "medical_record", Type: models.FieldTypeText, Subtype: "medical_record"},
			{Name: "patient_name", Type: models.FieldTypeText, Subtype: "name"},
			{Name: "age", Type: models.FieldTypeInteger, Subtype: "age",
				Constraints: models.Constraints{MinVal: models.Float(0), MaxVal: models.Float(100)}},
			{Name: "diagnosis_code", Type: models.FieldTypeText, Subtype: "diagnosis_code"},
			{Name: "medication", Type: models.FieldTypeText, Subtype: "medication",
				Constraints: models.Constraints{NullPercentage: 10}},
			{Name: "visit_date", Type: models.FieldTypeDate, Subtype: "visit_date",
				Constraints: models.Constraints{StartDate: "2022-01-01", EndDate: "2024-12-31"}},
		},
	}
}

// SocialMediaPosts models user-generated content events.
func SocialMediaPosts() *models.Schema {
	return &models.Schema{
		Name:        "Social Media Posts",
		Description: "Posts with engagement metrics and timing",
		Fields: []models.FieldSpec{
			{Name: "post_id", Type: models.FieldTypeInteger, Subtype: "id",
				Constraints: models.Constraints{Unique: true, MinVal: models.Float(1), MaxVal: models.Float(99999999)}},
			{Name: "author", Type: models.FieldTypeText, Subtype: "name"},
			{Name: "content", Type: models.FieldTypeText, Subtype: "sentence"},
			{Name: "post_date", Type: models.FieldTypeDate, Subtype: "post_date",
				Constraints: models.Constraints{StartDate: "2024-01-01", EndDate: "2024-12-31"}},
			{Name: "likes", Type: models.FieldTypeInteger, Subtype: "integer",
				Constraints: models.Constraints{MinVal: models.Float(0), MaxVal: models.Float(10000)}},
			{Name: "platform", Type: models.FieldTypeCategorical,
				Constraints: models.Constraints{Categories: []string{"twitter", "instagram", "facebook", "tiktok"}}},
		},
	}
}

// IoTSensorData models device telemetry readings.
func IoTSensorData() *models.Schema {
	return &models.Schema{
		Name:        "IoT Sensor Data",
		Description: "Device telemetry with environmental readings",
		Fields: []models.FieldSpec{
			{Name: "device_mac", Type: models.FieldTypeText, Subtype: "mac_address"},
			{Name: "timestamp", Type: models.FieldTypeDate, Subtype: "sensor_timestamp",
				Constraints: models.Constraints{StartDate: "2024-01-01", EndDate: "2024-12-31"}},
			{Name: "temperature", Type: models.FieldTypeFloat, Subtype: "temperature",
				Constraints: models.Constraints{MinVal: models.Float(-10), MaxVal: models.Float(40)}},
			{Name: "humidity", Type: models.FieldTypeFloat, Subtype: "humidity",
				Constraints: models.Constraints{MinVal: models.Float(0), MaxVal: models.Float(100)}},
			{Name: "latitude", Type: models.FieldTypeFloat, Subtype: "latitude"},
			{Name: "longitude", Type: models.FieldTypeFloat, Subtype: "longitude"},
			{Name: "device_ip", Type: models.FieldTypeText, Subtype: "ipv4"},
		},
	}
}
