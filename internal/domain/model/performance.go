package model

// PerformanceSummary is the classifier report served for a mission.
type PerformanceSummary struct {
	Mission     string     `json:"mission"`
	Precision   float64    `json:"precision"`
	Recall      float64    `json:"recall"`
	F1Score     float64    `json:"f1score"`
	Performance float64    `json:"performance"`
	ROC         []ROCPoint `json:"roc"`
	PR          []PRPoint  `json:"pr"`
}

// ROCPoint is a (false positive rate, true positive rate) pair.
type ROCPoint struct {
	FPR float64 `json:"fpr"`
	TPR float64 `json:"tpr"`
}

// PRPoint is a (recall, precision) pair.
type PRPoint struct {
	Recall    float64 `json:"recall"`
	Precision float64 `json:"precision"`
}
