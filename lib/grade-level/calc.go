package gradelevel

import (
	"time"
)

// Пакет считает курс кандидата по кодам академических кварталов.
// Код квартала: 4*год + смещение (0-зима, 1-весна, 2-лето, 3-осень).

const (
	QuarterWinter = 0
	QuarterSpring = 1
	QuarterSummer = 2
	QuarterFall   = 3

	// стандартная программа - 3 учебных квартала в год, лето не в счёт
	quartersPerAcademicYear = 3

	// программы короче 3 полных учебных лет считаем переводом
	// с зачётом двух лет
	transferTotalThreshold = 9
	transferYearCredit     = 2
)

func QuarterCode(year, offset int) int {
	return year*4 + offset
}

func CurrentQuarterCode(now time.Time) int {
	offset := (int(now.Month()) - 1) / 3
	return QuarterCode(now.Year(), offset)
}

// QuarterDiff - число учебных кварталов от кода a до кода b включительно.
// Летние кварталы не считаются: каждый календарный год между кодами
// вычитает один квартал. При b < a возвращает 0 - защитное значение,
// сохранено осознанно вместо ошибки.
func QuarterDiff(a, b int) int {
	if b < a {
		return 0
	}
	yearsBetween := b/4 - a/4
	return b - a - yearsBetween + 1
}

// Calculate возвращает курс кандидата (1 - первокурсник и тд) на момент now.
// Курс считается от квартала поступления независимо от даты выпуска;
// деление с округлением вверх относит студента в летнем квартале к
// завершённому учебному году.
func Calculate(startQuarter, gradQuarter int, now time.Time) int {
	totalQuarters := QuarterDiff(startQuarter, gradQuarter)
	sinceStart := QuarterDiff(startQuarter, CurrentQuarterCode(now))
	years := (sinceStart + quartersPerAcademicYear - 1) / quartersPerAcademicYear
	if totalQuarters < transferTotalThreshold {
		return years + transferYearCredit
	}
	return years
}
