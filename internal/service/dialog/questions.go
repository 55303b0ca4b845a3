package dialog

// segmentQuestionPreamble opens every persona-specific clarifying question.
const segmentQuestionPreamble = "Чтобы ответы респондента звучали реалистично и соответствовали задачам исследования, " +
	"укажи ключевой критерий сегмента, который важен именно для твоего исследования.\n\n" +
	"✍️ Напиши коротко: какой именно подтип аудитории тебе нужен и чем он важен для теста.\n\n" +
	"Примеры признаков:\n"

// genericSegmentQuestion is asked for persona ids without a tailored question.
const genericSegmentQuestion = "Опиши, пожалуйста, уточнения по сегменту целевой аудитории."

// segmentQuestions maps known persona ids to tailored clarifying questions.
var segmentQuestions = map[string]string{
	"young_mom_moscow": segmentQuestionPreamble +
		"• возраст ребёнка\n• семейное положение\n• занятость\n• тип жилья\n• интересы\n• уровень дохода семьи",
	"it_engineer": segmentQuestionPreamble +
		"• специализация\n• уровень (junior, middle, senior)\n• формат работы\n• страна\n• тип компании\n• приоритеты",
	"smb_owner": segmentQuestionPreamble +
		"• отрасль\n• размер бизнеса и команды\n• стаж предпринимателя\n• регион\n• модель бизнеса",
}

// segmentQuestion returns the clarifying question shown right after a persona
// is selected.
func segmentQuestion(personaID string) string {
	if q, ok := segmentQuestions[personaID]; ok {
		return q
	}
	return genericSegmentQuestion
}
