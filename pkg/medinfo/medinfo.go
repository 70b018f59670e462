// Package medinfo holds the static medical information texts and their
// Hindi and Marathi translations.
package medinfo

import (
	"log"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Section message IDs, in display order.
const (
	SectionUses        = "uses"
	SectionHow         = "how"
	SectionSide        = "side"
	SectionPrecautions = "precautions"
	SectionTips        = "tips"
)

// Sections lists the info sections in display order.
var Sections = []string{SectionUses, SectionHow, SectionSide, SectionPrecautions, SectionTips}

// Titles maps section IDs to their display headings.
var Titles = map[string]string{
	SectionUses:        "Uses",
	SectionHow:         "How to Take",
	SectionSide:        "Side Effects",
	SectionPrecautions: "Precautions",
	SectionTips:        "Diet Tips",
}

// Catalog resolves info section texts for a language.
type Catalog struct {
	bundle *i18n.Bundle
}

// NewCatalog builds the message catalog for all supported languages.
func NewCatalog() *Catalog {
	bundle := i18n.NewBundle(language.English)

	bundle.AddMessages(language.English,
		&i18n.Message{ID: SectionUses, Other: "Used for controlling blood sugar in Type 2 Diabetes Mellitus."},
		&i18n.Message{ID: SectionHow, Other: "Take with meals. Swallow whole with water. Follow dosage instructions provided by your doctor."},
		&i18n.Message{ID: SectionSide, Other: "Nausea, diarrhea, urinary tract infection, dizziness and abdominal pain."},
		&i18n.Message{ID: SectionPrecautions, Other: "Avoid alcohol. Inform doctor if you have kidney or liver issues. Monitor blood sugar level regularly."},
		&i18n.Message{ID: SectionTips, Other: "Include fiber-rich fruits like guava and vegetables to support recovery."},
	)

	bundle.AddMessages(language.Hindi,
		&i18n.Message{ID: SectionUses, Other: "टाइप 2 मधुमेह में ब्लड शुगर नियंत्रित करने के लिए उपयोग किया जाता है।"},
		&i18n.Message{ID: SectionHow, Other: "भोजन के साथ लें। गोली पानी के साथ पूरा निगलें। डॉक्टर के निर्देशों का पालन करें।"},
		&i18n.Message{ID: SectionSide, Other: "मतली, दस्त, मूत्र मार्ग संक्रमण, चक्कर और पेट में दर्द।"},
		&i18n.Message{ID: SectionPrecautions, Other: "शराब से बचें। यदि गुर्दे या जिगर की समस्या हो तो डॉक्टर को बताएं।"},
		&i18n.Message{ID: SectionTips, Other: "फाइबर युक्त फल और सब्जियाँ शामिल करें।"},
	)

	bundle.AddMessages(language.Marathi,
		&i18n.Message{ID: SectionUses, Other: "टाइप २ मधुमेहात रक्तातील साखर नियंत्रित करण्यासाठी वापरले जाते."},
		&i18n.Message{ID: SectionHow, Other: "जेवणासोबत घ्या. गोळी पाण्याने गिळा. डॉक्टरांच्या सूचनांचे पालन करा."},
		&i18n.Message{ID: SectionSide, Other: "मळमळ, जुलाब, संसर्ग, चक्कर व पोटदुखी."},
		&i18n.Message{ID: SectionPrecautions, Other: "दारू टाळा. डॉक्टरांना कळवा."},
		&i18n.Message{ID: SectionTips, Other: "फायबरयुक्त अन्न खा."},
	)

	return &Catalog{bundle: bundle}
}

// Text returns the section text in the given language, falling back to
// English for unknown languages or IDs.
func (c *Catalog) Text(lang, sectionID string) string {
	localizer := i18n.NewLocalizer(c.bundle, lang)
	text, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: sectionID})
	if err != nil {
		log.Printf("Missing info text for %s/%s: %v", lang, sectionID, err)
		return ""
	}
	return text
}
