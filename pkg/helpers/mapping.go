package helpers

import (
	"fmt"

	"github.com/oksasatya/courseitda/pkg/mailer"
)

// EnsureRecipientAndEmail fills the recipient fields templates expect from job.To.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// MergeDefaults copies defaults into job.Data for keys the job does not set.
func MergeDefaults(job *mailer.EmailJob, defaults map[string]any) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	for k, v := range defaults {
		if cur, ok := job.Data[k]; !ok || fmt.Sprintf("%v", cur) == "" {
			job.Data[k] = v
		}
	}
}
