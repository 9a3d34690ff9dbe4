package memorytrack

import "fmt"

func buildExtractionPrompt(answer, fieldKey, ideaContext string) string {
	if ideaContext == "" {
		ideaContext = "არ არის მითითებული"
	}
	return fmt.Sprintf(`თქვენ ხართ ენტიტების ამოღების სისტემა ქართულ ბიზნეს დიალოგებისთვის.

**დავალება:** ამოიღეთ მნიშვნელოვანი ენტიტები მომხმარებლის პასუხიდან.

**იდეის კონტექსტი:** %s

**ველი:** %s

**მომხმარებლის პასუხი:**
"%s"

**ამოსაღები ენტიტების კატეგორიები:**

1. **audiences** - აუდიტორია/მომხმარებლის სეგმენტები
   მაგალითები: "სტუდენტები", "SMB ბიზნესები", "IT სპეციალისტები"

2. **competitors** - კონკურენტები/ალტერნატივები
   მაგალითები: "ChatGPT", "Notion", "Google Docs", "Excel"

3. **features** - ფუნქციები/შესაძლებლობები
   მაგალითები: "AI chat", "PDF export", "real-time collaboration"

4. **numbers** - რიცხვები (ფასები, რაოდენობები, პროცენტები, დრო)
   მაგალითები: "500 ლარი", "1000 მომხმარებელი", "3 თვე", "20%%"

5. **locations** - ლოკაციები/ბაზრები
   მაგალითები: "თბილისი", "საქართველო", "ევროპა"

**წესები:**
- ამოიღეთ მხოლოდ კონკრეტულად ნახსენები ენტიტები
- ნუ გამოიგონებთ ან დაამატებთ ენტიტებს
- დააბრუნეთ ცარიელი მასივი თუ არ იპოვეთ ენტიტეები კატეგორიაში
- გამოიყენეთ ზუსტად ისე როგორც მომხმარებელმა მოიხსენია
- თითოეულ კატეგორიაში max 5 ენტიტი

**პასუხის ფორმატი (JSON):**
{
  "audiences": ["string array"],
  "competitors": ["string array"],
  "features": ["string array"],
  "numbers": ["string array"],
  "locations": ["string array"]
}

მხოლოდ JSON დააბრუნეთ, სხვა ტექსტის გარეშე.`, ideaContext, fieldKey, answer)
}

func buildContradictionPrompt(answer, fieldKey, memorySummary string) string {
	return fmt.Sprintf(`თქვენ ხართ წინააღმდეგობების დეტექტორი ბიზნეს იდეის შესახებ დიალოგში.

**დავალება:** შეამოწმეთ არის თუ არა წინააღმდეგობა ახლანდელ პასუხსა და წინა პასუხებს შორის.

**მეხსიერებაში შენახული ინფორმაცია:**
%s

**ახლანდელი ველი:** %s

**ახლანდელი პასუხი:**
"%s"

**რას ეძებთ:**

1. **პირდაპირი წინააღმდეგობები:**
   - მაგალითი: ადრე: "ყველას აქვს ეს პრობლემა", ახლა: "მხოლოდ IT სპეციალისტებს"
   - მაგალითი: ადრე: "უფასო იქნება", ახლა: "თვეში 50 ლარი"

2. **რიცხვითი შეუსაბამობები:**
   - მაგალითი: ადრე: "1000 მომხმარებელი", ახლა: "100 მომხმარებელი"

3. **აუდიტორიის შეუთავსებლობა:**
   - მაგალითი: ადრე: "სტუდენტები", ახლა: "მაღალანაზღაურებადი პროფესიონალები"

4. **სტრატეგიული წინააღმდეგობები:**
   - მაგალითი: ადრე: "B2C", ახლა: "ვყიდით კომპანიებს"

**ნუ ჩათვლით წინააღმდეგობად:**
- მცირე დეტალების დაზუსტებები
- ბუნებრივი პროგრესია იდეის განვითარებაში
- სხვადასხვა კუთხით ახსნა იმავე რამის

**პასუხის ფორმატი (JSON):**
{
  "has_contradiction": boolean,
  "contradiction_details": {
    "field1": "პირველი ველის სახელი",
    "statement1": "რა თქვა მანამდე",
    "statement2": "რა თქვა ახლა",
    "explanation": "მოკლე ახსნა რატომ არის წინააღმდეგობა"
  },
  "clarification_question": "კითხვა ქართულად რომელიც სთხოვს დაზუსტებას (თუ არის წინააღმდეგობა)"
}

თუ არ არის წინააღმდეგობა:
{
  "has_contradiction": false
}

მხოლოდ JSON დააბრუნეთ, სხვა ტექსტის გარეშე.`, memorySummary, fieldKey, answer)
}
