package enum

// ExpenseCategory is one of the fixed bookkeeping categories
type ExpenseCategory string

const (
	ExpenseElectricity          ExpenseCategory = "Electricity"
	ExpenseWaterBill            ExpenseCategory = "Water Bill"
	ExpenseIndustrialDetergents ExpenseCategory = "Industrial Detergents (Booster, Oxybleach, Powder, Fabric Softener)"
	ExpenseRent                 ExpenseCategory = "Rent"
	ExpenseSalary               ExpenseCategory = "Salary"
	ExpenseRiderPayments        ExpenseCategory = "Rider Payments (Pickup & Delivery)"
	ExpenseDetergents           ExpenseCategory = "Detergents (Bar Soap, Normal Powder, Downy)"
	ExpenseBundle               ExpenseCategory = "Bundle (Calls & WhatsApp/SMS)"
	ExpenseMarketing            ExpenseCategory = "Marketing (Flyers, Business Cards, Instagram Ads)"
	ExpenseRepairs              ExpenseCategory = "Repairs"
	ExpenseNewEquipment         ExpenseCategory = "New Equipment (Machines, Mop Sticks, Lights)"
	ExpenseBusinessPermits      ExpenseCategory = "Business Permits (Business, Health, Signage)"
	ExpenseLaundryBags          ExpenseCategory = "Laundry Bags & Suit Covers"
	ExpenseOther                ExpenseCategory = "Other"
)

var expenseCategories = []ExpenseCategory{
	ExpenseElectricity,
	ExpenseWaterBill,
	ExpenseIndustrialDetergents,
	ExpenseRent,
	ExpenseSalary,
	ExpenseRiderPayments,
	ExpenseDetergents,
	ExpenseBundle,
	ExpenseMarketing,
	ExpenseRepairs,
	ExpenseNewEquipment,
	ExpenseBusinessPermits,
	ExpenseLaundryBags,
	ExpenseOther,
}

// ExpenseCategories returns the category list in display order
func ExpenseCategories() []ExpenseCategory {
	out := make([]ExpenseCategory, len(expenseCategories))
	copy(out, expenseCategories)
	return out
}

// IsValid reports whether c is in the category list
func (c ExpenseCategory) IsValid() bool {
	for _, known := range expenseCategories {
		if c == known {
			return true
		}
	}
	return false
}
