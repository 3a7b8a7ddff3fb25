package insight

import (
	"fmt"
	"time"

	"github.com/and161185/agrocarbon/internal/model"
)

// ProofReminderAfter is how long without a proof before a reminder fires.
const ProofReminderAfter = 30 * 24 * time.Hour

// minPracticesBeforeQuiet silences the practice suggestion once reached.
const minPracticesBeforeQuiet = 3

// Navigation targets carried by alerts.
const (
	ActionProofUpload = "proof-upload"
	ActionPractice    = "practice"
)

// SmartAlerts evaluates the reminder rules for one user's activity at now.
// proofs are expected in submission order; the last one is the most recent.
func SmartAlerts(farms []model.Farm, practices []model.Practice, proofs []model.Proof, now time.Time) []model.AlertDraft {
	var out []model.AlertDraft

	if len(farms) > 0 && proofOverdue(proofs, now) {
		out = append(out, model.AlertDraft{
			Type: model.AlertProofUpload,
			Title: model.LocalizedText{
				En: "Upload Proof Reminder",
				Hi: "प्रमाण अपलोड करने का अनुस्मारक",
				Mr: "पुरावा अपलोड करण्याची आठवण",
			},
			Message: model.LocalizedText{
				En: "Upload recent farming activity photos to earn more credits",
				Hi: "अधिक क्रेडिट अर्जित करने के लिए हाल की खेती गतिविधि की तस्वीरें अपलोड करें",
				Mr: "अधिक क्रेडिट्स मिळविण्यासाठी अलीकडील शेती क्रियाकलापांचे फोटो अपलोड करा",
			},
			Icon:   "📸",
			Action: ActionProofUpload,
		})
	}

	if len(farms) > 0 && len(practices) < minPracticesBeforeQuiet {
		out = append(out, model.AlertDraft{
			Type: model.AlertPracticeSuggestion,
			Title: model.LocalizedText{
				En: "Increase Your Carbon Score",
				Hi: "अपना कार्बन स्कोर बढ़ाएं",
				Mr: "तुमचा कार्बन स्कोअर वाढवा",
			},
			Message: model.LocalizedText{
				En: "Adopt more eco-practices to boost your green score and earnings",
				Hi: "अपने हरित स्कोर और कमाई को बढ़ावा देने के लिए अधिक इको-प्रथाओं को अपनाएं",
				Mr: "तुमचा ग्रीन स्कोअर आणि कमाई वाढविण्यासाठी अधिक इको-पद्धती स्वीकारा",
			},
			Icon:   "🌱",
			Action: ActionPractice,
		})
	}

	if pending := countPending(proofs); pending > 0 {
		out = append(out, model.AlertDraft{
			Type: model.AlertVerificationPending,
			Title: model.LocalizedText{
				En: "Verification in Progress",
				Hi: "सत्यापन प्रगति में है",
				Mr: "सत्यापन प्रगतीपथावर आहे",
			},
			Message: model.LocalizedText{
				En: fmt.Sprintf("%d proof(s) are being verified by our team", pending),
				Hi: fmt.Sprintf("%d प्रमाण हमारी टीम द्वारा सत्यापित किए जा रहे हैं", pending),
				Mr: fmt.Sprintf("%d पुरावे आमच्या टीमद्वारे सत्यापित केले जात आहेत", pending),
			},
			Icon: "⏳",
		})
	}

	return out
}

// proofOverdue reports whether no proof was ever submitted or the latest is
// more than 30 whole days old.
func proofOverdue(proofs []model.Proof, now time.Time) bool {
	if len(proofs) == 0 {
		return true
	}
	last := proofs[len(proofs)-1].Timestamp
	days := int(now.Sub(last) / (24 * time.Hour))
	return days > int(ProofReminderAfter/(24*time.Hour))
}

func countPending(proofs []model.Proof) int {
	n := 0
	for _, p := range proofs {
		if p.Status == model.ProofPending {
			n++
		}
	}
	return n
}
