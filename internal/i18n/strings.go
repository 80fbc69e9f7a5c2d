package i18n

var builtin = map[Lang]map[string]string{
	EN: {
		"home.title":                "Adorable Products for Your Little One",
		"home.description":          "Discover our collection of high-quality baby products that bring joy and comfort to your baby's life.",
		"home.featured":             "Featured Products",
		"home.viewAll":              "View All Products",
		"footer.categories":         "Categories",
		"footer.newArrivals":        "New Arrivals",
		"footer.babyClothes":        "Baby Clothes",
		"footer.toys":               "Toys & Games",
		"footer.feeding":            "Feeding & Nursing",
		"footer.contactUs":          "Contact Us",
		"footer.followUs":           "Follow Us",
		"footer.newsletter":         "Newsletter",
		"footer.subscribe":          "Subscribe to get special offers and cute updates!",
		"footer.rights":             "All rights reserved.",
		"product.buyNow":            "Buy Now",
		"product.quantity":          "Quantity",
		"product.color":             "Color",
		"product.size":              "Size",
		"product.description":       "Description",
		"product.reviews":           "Reviews",
		"product.relatedProducts":   "Related Products",
		"product.outOfStock":        "Out of stock",
		"product.lowStock":          "Only {count} left in stock",
		"checkout.title":            "Checkout",
		"checkout.customerInfo":     "Customer Information",
		"checkout.paymentMethod":    "Payment Method",
		"checkout.orderSummary":     "Order Summary",
		"checkout.placeOrder":       "Place Order",
		"checkout.shippingLocation": "Shipping Location",
		"checkout.shippingNote":     "Shipping cost will be added to your total",
		"checkout.subtotal":         "Subtotal",
		"checkout.shipping":         "Shipping",
		"checkout.grandTotal":       "Grand Total",
		"checkout.orderSuccess":     "Order Placed Successfully",
		"admin.shippingTitle":       "Shipping Costs",
		"admin.shipping.cost":       "Cost (৳)",
		"admin.orderNumber":         "Order Number",
		"admin.transactionId":       "Transaction ID",
		"admin.save":                "Save",
	},
	BN: {
		"home.title":                "আপনার ছোট্ট শিশুর জন্য সুন্দর পণ্য",
		"home.description":          "আপনার শিশুর জীবনে আনন্দ এবং আরাম আনে এমন উচ্চ-মানের শিশু পণ্যের আমাদের সংগ্রহ আবিষ্কার করুন।",
		"footer.categories":         "বিভাগসমূহ",
		"footer.newArrivals":        "নতুন আগমন",
		"footer.babyClothes":        "শিশুর পোশাক",
		"footer.toys":               "খেলনা এবং গেমস",
		"footer.feeding":            "ফিডিং এবং নার্সিং",
		"footer.contactUs":          "যোগাযোগ করুন",
		"footer.followUs":           "আমাদের অনুসরণ করুন",
		"footer.newsletter":         "নিউজলেটার",
		"footer.subscribe":          "বিশেষ অফার এবং সুন্দর আপডেট পেতে সাবস্ক্রাইব করুন!",
		"footer.rights":             "সর্বস্বত্ব সংরক্ষিত।",
		"product.buyNow":            "এখনই কিনুন",
		"product.quantity":          "পরিমাণ",
		"product.color":             "রঙ",
		"product.size":              "আকার",
		"product.description":       "বিবরণ",
		"product.reviews":           "রিভিউ",
		"product.relatedProducts":   "সম্পর্কিত পণ্য",
		"checkout.title":            "চেকআউট",
		"checkout.customerInfo":     "গ্রাহক তথ্য",
		"checkout.paymentMethod":    "পেমেন্ট পদ্ধতি",
		"checkout.orderSummary":     "অর্ডার সারাংশ",
		"checkout.placeOrder":       "অর্ডার করুন",
		"checkout.shippingLocation": "শিপিং অবস্থান",
		"checkout.shippingNote":     "আপনার মোট খরচের সাথে শিপিং খরচ যোগ করা হবে",
		"checkout.subtotal":         "সাবটোটাল",
		"checkout.shipping":         "শিপিং",
		"checkout.grandTotal":       "সর্বমোট",
		"checkout.orderSuccess":     "অর্ডার সফলভাবে সম্পন্ন হয়েছে",
		"admin.shippingTitle":       "শিপিং খরচ",
		"admin.shipping.cost":       "খরচ (৳)",
		"admin.orderNumber":         "অর্ডার নম্বর",
		"admin.transactionId":       "ট্রানজেকশন আইডি",
		"admin.save":                "সংরক্ষণ করুন",
	},
}
