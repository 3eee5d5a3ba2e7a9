// Package capability holds the per-role registry of invocable functions
// and contextual knowledge. The registry is static data built at init;
// lookups are pure and cannot fail: an unknown role resolves to a default
// profile with no functions, so unrecognized callers fail closed.
package capability

import "github.com/kisanmitra/kisanmitra/pkg/model"

var profiles = map[model.Role]*model.CapabilityProfile{
	model.RoleFarmer: {
		Role: model.RoleFarmer,
		Functions: []model.FunctionName{
			model.FnCreatePayment,
			model.FnGetWeatherForecast,
			model.FnRecordHarvest,
			model.FnGenerateQRCode,
			model.FnSendNotification,
			model.FnCheckScheme,
		},
		ContextDescription: "You assist a farmer selling produce on the marketplace: payments for inputs, weather outlooks, harvest records, produce QR codes, and government scheme eligibility.",
		KnowledgeSnippets: []string{
			"Payments can cover seeds, fertilizer, equipment, and transport.",
			"Weather outlooks follow the kharif, rabi, and zaid cropping seasons.",
			"PM-KISAN and crop insurance schemes depend on registered land records.",
		},
	},
	model.RoleConsumer: {
		Role: model.RoleConsumer,
		Functions: []model.FunctionName{
			model.FnCreatePayment,
			model.FnTrackOrder,
			model.FnRaiseComplaint,
			model.FnGenerateQRCode,
		},
		ContextDescription: "You assist a consumer buying fresh produce: paying for orders, tracking deliveries, raising complaints, and sharing order QR codes.",
		KnowledgeSnippets: []string{
			"Orders ship from the nearest warehouse and arrive within two to four days.",
			"Complaints about damaged or wrong items are eligible for refunds.",
		},
	},
	model.RoleWarehouse: {
		Role: model.RoleWarehouse,
		Functions: []model.FunctionName{
			model.FnCheckInventory,
			model.FnRecordStockEntry,
			model.FnGenerateQRCode,
			model.FnSendNotification,
		},
		ContextDescription: "You assist a warehouse operator: checking stock levels, recording incoming stock, labeling batches with QR codes, and notifying farmers about deliveries.",
		KnowledgeSnippets: []string{
			"Stock entries are append-only; corrections are made with compensating entries.",
			"Each produce batch gets a QR code for traceability.",
		},
	},
	model.RoleAdmin: {
		Role: model.RoleAdmin,
		Functions: []model.FunctionName{
			model.FnSendNotification,
			model.FnBroadcastAnnouncement,
			model.FnCheckInventory,
		},
		ContextDescription: "You assist a platform administrator: broadcasting announcements, notifying users, and reviewing warehouse inventory across the system.",
		KnowledgeSnippets: []string{
			"Broadcasts reach every active user; targeted notifications reach one audience.",
		},
	},
}

// defaultProfile is returned for unknown roles: no functions, generic context
var defaultProfile = &model.CapabilityProfile{
	ContextDescription: "You assist a marketplace user. Ask them to sign in with a recognized account to unlock actions.",
}

// For returns the capability profile of the given role. Unknown roles get
// a profile with an empty function set.
func For(role model.Role) *model.CapabilityProfile {
	if p, ok := profiles[role]; ok {
		return p
	}
	return defaultProfile
}
