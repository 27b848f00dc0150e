package process

// Identity key sets per Congress.gov resource. Two records matching on
// every listed field are the same resource.
var (
	BillKeys            = []string{"congress", "type", "number"}
	AmendmentKeys       = []string{"number", "type", "congress"}
	CommitteePrintKeys  = []string{"congress", "chamber", "jacketNumber"}
	CommitteeReportKeys = []string{"congress", "type", "number"}
	SummaryKeys         = []string{"bill.congress", "bill.type", "bill.number", "actionDate"}
	CommunicationKeys   = []string{"congressNumber", "communicationType.code", "communicationNumber"}
	TreatyKeys          = []string{"congressReceived", "number", "suffix"}
)

// DeduplicateBills removes duplicate bills by (congress, type, number).
func DeduplicateBills(results []Record) []Record {
	return Deduplicate(results, BillKeys)
}

// SortBillsByUpdateDate orders bills newest-first by updateDate.
func SortBillsByUpdateDate(results []Record) []Record {
	return Sort(results, "updateDate", true, "")
}

// FilterBillsByCongress keeps bills from the given congress.
func FilterBillsByCongress(results []Record, congress int) []Record {
	return Filter(results, func(r Record) bool {
		v, found := fieldValue(r, "congress")
		if !found {
			return false
		}
		n, isNum := asFloat(v)
		return isNum && int(n) == congress
	})
}

// DeduplicateAmendments removes duplicate amendments by
// (number, type, congress).
func DeduplicateAmendments(results []Record) []Record {
	return Deduplicate(results, AmendmentKeys)
}

// SortAmendmentsByDate orders amendments newest-first by updateDate.
func SortAmendmentsByDate(results []Record) []Record {
	return Sort(results, "updateDate", true, "")
}

// DeduplicateCommitteePrints removes duplicate prints by
// (congress, chamber, jacketNumber).
func DeduplicateCommitteePrints(results []Record) []Record {
	return Deduplicate(results, CommitteePrintKeys)
}

// DeduplicateCommitteeReports removes duplicate reports by
// (congress, type, number).
func DeduplicateCommitteeReports(results []Record) []Record {
	return Deduplicate(results, CommitteeReportKeys)
}

// DeduplicateSummaries removes duplicate bill summaries by the owning
// bill's identity plus the summary action date.
func DeduplicateSummaries(results []Record) []Record {
	return Deduplicate(results, SummaryKeys)
}

// SortSummariesByActionDate orders summaries newest-first.
func SortSummariesByActionDate(results []Record) []Record {
	return Sort(results, "actionDate", true, "")
}

// DeduplicateCommunications removes duplicate House or Senate
// communications by (congressNumber, communicationType.code,
// communicationNumber).
func DeduplicateCommunications(results []Record) []Record {
	return Deduplicate(results, CommunicationKeys)
}

// DeduplicateTreaties removes duplicate treaties by
// (congressReceived, number, suffix).
func DeduplicateTreaties(results []Record) []Record {
	return Deduplicate(results, TreatyKeys)
}

// SortTreatiesByDate orders treaties newest-first by updateDate.
func SortTreatiesByDate(results []Record) []Record {
	return Sort(results, "updateDate", true, "")
}
